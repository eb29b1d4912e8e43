package services

import (
	"legal_aid_app_go/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Coordinator{},
		&models.LawyerProfile{},
		&models.Office{},
		&models.ServiceRequest{},
		&models.Case{},
		&models.CaseActivity{},
		&models.Activity{},
		&models.Role{},
		&models.Permission{},
		&models.RolePermission{},
		&models.MessageThread{},
		&models.Message{},
		&models.ThreadParticipant{},
		&models.MessageReaction{},
		&models.MessageNotification{},
		&models.Attachment{},
	)
	assert.NoError(t, err)

	return db
}

// createTestUser inserts a minimal active user and returns it.
func createTestUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	user := &models.User{
		FullName: "Test User",
		Email:    email,
		Password: "not-a-real-hash",
		UserRole: role,
		Status:   models.UserStatusActive,
	}
	assert.NoError(t, db.Create(user).Error)
	return user
}
