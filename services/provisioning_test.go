package services

import (
	"legal_aid_app_go/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterLawyerCreatesDefaultOffice(t *testing.T) {
	db := setupTestDB(t)

	result, err := RegisterUser(db, RegisterInput{
		Email:    "a@x.com",
		Password: "SecretPass123!",
		FullName: "Ada Abogada",
		Role:     models.RoleLawyer,
	})
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, models.RoleLawyer, result.User.UserRole)
	assert.False(t, result.User.IsAdmin)
	assert.Contains(t, result.Guidance, "profile setup")

	// The well-known default office was created on first use
	var office models.Office
	assert.NoError(t, db.Where("name = ?", models.DefaultOfficeName).First(&office).Error)

	// The profile is pending and attached to it
	var profile models.LawyerProfile
	assert.NoError(t, db.Where("user_id = ?", result.User.ID).First(&profile).Error)
	assert.Equal(t, models.LawyerStatusPending, profile.Status)
	assert.NotNil(t, profile.OfficeID)
	assert.Equal(t, office.ID, *profile.OfficeID)

	// Password is stored hashed, never in the clear
	var stored models.User
	assert.NoError(t, db.First(&stored, "id = ?", result.User.ID).Error)
	assert.NotEqual(t, "SecretPass123!", stored.Password)
	assert.True(t, VerifyPassword(stored.Password, "SecretPass123!"))
}

func TestRegisterLawyerReusesExistingDefaultOffice(t *testing.T) {
	db := setupTestDB(t)

	existing := &models.Office{Name: models.DefaultOfficeName, Type: models.OfficeTypeHeadquarters, Status: models.OfficeStatusActive}
	assert.NoError(t, db.Create(existing).Error)

	result, err := RegisterUser(db, RegisterInput{
		Email:    "b@x.com",
		Password: "SecretPass123!",
		FullName: "Second Lawyer",
		Role:     models.RoleLawyer,
	})
	assert.NoError(t, err)

	var count int64
	db.Model(&models.Office{}).Where("name = ?", models.DefaultOfficeName).Count(&count)
	assert.Equal(t, int64(1), count)

	var profile models.LawyerProfile
	assert.NoError(t, db.Where("user_id = ?", result.User.ID).First(&profile).Error)
	assert.Equal(t, existing.ID, *profile.OfficeID)
}

func TestRegisterCoordinatorStartsPending(t *testing.T) {
	db := setupTestDB(t)

	result, err := RegisterUser(db, RegisterInput{
		Email:    "coord@x.com",
		Password: "SecretPass123!",
		FullName: "Carla Coordinadora",
		Role:     models.RoleCoordinator,
	})
	assert.NoError(t, err)

	var coordinator models.Coordinator
	assert.NoError(t, db.Where("user_id = ?", result.User.ID).First(&coordinator).Error)
	assert.Equal(t, models.CoordinatorTypePending, coordinator.Type)
	assert.Equal(t, models.CoordinatorStatusPending, coordinator.Status)
	assert.Nil(t, coordinator.OfficeID)
}

func TestRegisterClientHasNoProfile(t *testing.T) {
	db := setupTestDB(t)

	result, err := RegisterUser(db, RegisterInput{
		Email:    "client@x.com",
		Password: "SecretPass123!",
		FullName: "Cliente",
		Role:     models.RoleClient,
	})
	assert.NoError(t, err)

	var coordinators, lawyers int64
	db.Model(&models.Coordinator{}).Where("user_id = ?", result.User.ID).Count(&coordinators)
	db.Model(&models.LawyerProfile{}).Where("user_id = ?", result.User.ID).Count(&lawyers)
	assert.Equal(t, int64(0), coordinators)
	assert.Equal(t, int64(0), lawyers)
}

func TestRegisterInvalidRole(t *testing.T) {
	db := setupTestDB(t)

	result, err := RegisterUser(db, RegisterInput{
		Email:    "x@x.com",
		Password: "SecretPass123!",
		FullName: "X",
		Role:     "WIZARD",
	})
	assert.ErrorIs(t, err, ErrInvalidRole)
	assert.Nil(t, result)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)

	_, err := RegisterUser(db, RegisterInput{
		Email:    "a@x.com",
		Password: "SecretPass123!",
		FullName: "First",
		Role:     models.RoleLawyer,
	})
	assert.NoError(t, err)

	result, err := RegisterUser(db, RegisterInput{
		Email:    "a@x.com",
		Password: "OtherPass456!",
		FullName: "Second",
		Role:     models.RoleClient,
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Nil(t, result)

	var count int64
	db.Model(&models.User{}).Where("email = ?", "a@x.com").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRegisterRollsBackWhenProfileStepFails(t *testing.T) {
	db := setupTestDB(t)

	// Force the profile-creation step to fail after the user insert
	assert.NoError(t, db.Migrator().DropTable(&models.LawyerProfile{}))

	result, err := RegisterUser(db, RegisterInput{
		Email:    "rollback@x.com",
		Password: "SecretPass123!",
		FullName: "Rollback",
		Role:     models.RoleLawyer,
	})
	assert.Error(t, err)
	assert.Nil(t, result)

	// The user insert must have been rolled back with it
	var users int64
	db.Model(&models.User{}).Where("email = ?", "rollback@x.com").Count(&users)
	assert.Equal(t, int64(0), users)
}

func TestEnsureDefaultOfficeIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	first, err := EnsureDefaultOffice(db)
	assert.NoError(t, err)
	second, err := EnsureDefaultOffice(db)
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&models.Office{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateCoordinatorWritesActivity(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin@x.com", models.RoleAdmin)

	coordinator, err := CreateCoordinator(db, CoordinatorInput{
		Email:       "coord2@x.com",
		Password:    "SecretPass123!",
		FullName:    "New Coordinator",
		Specialties: "housing,family",
	}, admin.ID)
	assert.NoError(t, err)
	assert.NotNil(t, coordinator.User)
	assert.Equal(t, models.RoleCoordinator, coordinator.User.UserRole)
	assert.Equal(t, models.CoordinatorStatusPending, coordinator.Status)

	var activity models.Activity
	assert.NoError(t, db.Where("resource_type = ? AND resource_id = ?", "Coordinator", coordinator.ID).First(&activity).Error)
	assert.Equal(t, models.ActivityActionCreate, activity.Action)
	assert.Equal(t, admin.ID, *activity.UserID)
}

func TestCreateCoordinatorDuplicateEmailRollsBack(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin@x.com", models.RoleAdmin)

	_, err := CreateCoordinator(db, CoordinatorInput{
		Email:    "taken@x.com",
		Password: "SecretPass123!",
		FullName: "First",
	}, admin.ID)
	assert.NoError(t, err)

	_, err = CreateCoordinator(db, CoordinatorInput{
		Email:    "taken@x.com",
		Password: "SecretPass123!",
		FullName: "Second",
	}, admin.ID)
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	var coordinators int64
	db.Model(&models.Coordinator{}).Count(&coordinators)
	assert.Equal(t, int64(1), coordinators)
}
