package services

import (
	"legal_aid_app_go/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func seedRoleAndPermission(t *testing.T, db *gorm.DB) (*models.Role, *models.Permission) {
	role := &models.Role{Name: "office-admin", Description: "test role"}
	permission := &models.Permission{Name: "cases.read", Description: "test permission"}
	assert.NoError(t, db.Create(role).Error)
	assert.NoError(t, db.Create(permission).Error)
	return role, permission
}

func TestTogglePermissionGrantsWhenAbsent(t *testing.T) {
	db := setupTestDB(t)
	role, permission := seedRoleAndPermission(t, db)

	updated, err := TogglePermission(db, role.ID, permission.ID)
	assert.NoError(t, err)
	assert.Len(t, updated.Permissions, 1)
	assert.Equal(t, permission.ID, updated.Permissions[0].ID)
}

func TestTogglePermissionRevokesWhenPresent(t *testing.T) {
	db := setupTestDB(t)
	role, permission := seedRoleAndPermission(t, db)
	assert.NoError(t, db.Create(&models.RolePermission{RoleID: role.ID, PermissionID: permission.ID}).Error)

	updated, err := TogglePermission(db, role.ID, permission.ID)
	assert.NoError(t, err)
	assert.Len(t, updated.Permissions, 0)

	var joins int64
	db.Model(&models.RolePermission{}).Count(&joins)
	assert.Equal(t, int64(0), joins)
}

func TestTogglePermissionTwiceRestoresOriginalSet(t *testing.T) {
	db := setupTestDB(t)
	role, permission := seedRoleAndPermission(t, db)

	other := &models.Permission{Name: "cases.write"}
	assert.NoError(t, db.Create(other).Error)
	assert.NoError(t, db.Create(&models.RolePermission{RoleID: role.ID, PermissionID: other.ID}).Error)

	first, err := TogglePermission(db, role.ID, permission.ID)
	assert.NoError(t, err)
	assert.Len(t, first.Permissions, 2)

	second, err := TogglePermission(db, role.ID, permission.ID)
	assert.NoError(t, err)
	assert.Len(t, second.Permissions, 1)
	assert.Equal(t, other.ID, second.Permissions[0].ID)
}

func TestTogglePermissionUnknownRole(t *testing.T) {
	db := setupTestDB(t)
	_, permission := seedRoleAndPermission(t, db)

	role, err := TogglePermission(db, "missing-role", permission.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, role)
}

func TestTogglePermissionUnknownPermission(t *testing.T) {
	db := setupTestDB(t)
	role, _ := seedRoleAndPermission(t, db)

	updated, err := TogglePermission(db, role.ID, "missing-permission")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, updated)

	var joins int64
	db.Model(&models.RolePermission{}).Count(&joins)
	assert.Equal(t, int64(0), joins)
}
