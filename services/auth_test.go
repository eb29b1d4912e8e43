package services

import (
	"legal_aid_app_go/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	assert.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, VerifyPassword(hash, "correct horse battery staple"))
	assert.False(t, VerifyPassword(hash, "wrong password"))
}

func TestAuthenticateSuccess(t *testing.T) {
	db := setupTestDB(t)
	hash, err := HashPassword("secret123")
	assert.NoError(t, err)
	user := &models.User{
		FullName: "Login User",
		Email:    "login@x.com",
		Password: hash,
		UserRole: models.RoleClient,
		Status:   models.UserStatusActive,
	}
	assert.NoError(t, db.Create(user).Error)

	got, err := Authenticate(db, "login@x.com", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotNil(t, got.LastLoginAt)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	hash, err := HashPassword("secret123")
	assert.NoError(t, err)
	assert.NoError(t, db.Create(&models.User{
		FullName: "Login User",
		Email:    "login@x.com",
		Password: hash,
		UserRole: models.RoleClient,
		Status:   models.UserStatusActive,
	}).Error)

	user, err := Authenticate(db, "login@x.com", "not-it")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, user)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	db := setupTestDB(t)

	user, err := Authenticate(db, "nobody@x.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, user)
}

func TestAuthenticateInactiveUser(t *testing.T) {
	db := setupTestDB(t)
	hash, err := HashPassword("secret123")
	assert.NoError(t, err)
	assert.NoError(t, db.Create(&models.User{
		FullName: "Suspended User",
		Email:    "suspended@x.com",
		Password: hash,
		UserRole: models.RoleClient,
		Status:   models.UserStatusSuspended,
	}).Error)

	user, err := Authenticate(db, "suspended@x.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, user)
}
