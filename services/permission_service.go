package services

import (
	"errors"
	"fmt"
	"legal_aid_app_go/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TogglePermission flips a permission's membership on a role: present gets
// removed, absent gets added. Returns the role with its full permission set.
//
// The mutation is a single conflict-guarded insert evaluated by the store,
// not a read-then-write: if the insert hits the existing join row, the pair
// was present and is deleted instead. Two racing toggles of the same pair
// cannot corrupt the association.
func TogglePermission(db *gorm.DB, roleID, permissionID string) (*models.Role, error) {
	var role models.Role

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&role, "id = ?", roleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load role: %w", err)
		}

		var permission models.Permission
		if err := tx.First(&permission, "id = ?", permissionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load permission: %w", err)
		}

		join := models.RolePermission{RoleID: roleID, PermissionID: permissionID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&join)
		if res.Error != nil {
			return fmt.Errorf("failed to toggle permission: %w", res.Error)
		}

		if res.RowsAffected == 0 {
			// Pair already existed: toggle means revoke
			if err := tx.Where("role_id = ? AND permission_id = ?", roleID, permissionID).
				Delete(&models.RolePermission{}).Error; err != nil {
				return fmt.Errorf("failed to revoke permission: %w", err)
			}
		}

		return tx.Preload("Permissions").First(&role, "id = ?", roleID).Error
	})
	if err != nil {
		return nil, err
	}

	return &role, nil
}

// GetRole returns a role with its permission set.
func GetRole(db *gorm.DB, roleID string) (*models.Role, error) {
	var role models.Role
	if err := db.Preload("Permissions").First(&role, "id = ?", roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load role: %w", err)
	}
	return &role, nil
}
