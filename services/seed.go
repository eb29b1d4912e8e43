package services

import (
	"fmt"
	"legal_aid_app_go/models"
	"log"
	"os"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedSuperadminFromEnv creates a superadmin user from environment variables.
// Only runs if SUPERADMIN_EMAIL and SUPERADMIN_PASSWORD are set and no
// superadmin user exists yet.
func SeedSuperadminFromEnv(db *gorm.DB) error {
	email := os.Getenv("SUPERADMIN_EMAIL")
	password := os.Getenv("SUPERADMIN_PASSWORD")
	name := os.Getenv("SUPERADMIN_NAME")

	// Skip if env vars not set
	if email == "" || password == "" {
		return nil
	}

	if name == "" {
		name = "Superadmin"
	}

	var count int64
	if err := db.Model(&models.User{}).Where("user_role = ?", models.RoleSuperAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("[SEED] Superadmin user already exists, skipping seed")
		return nil
	}

	var existingUser models.User
	if err := db.Where("email = ?", email).First(&existingUser).Error; err == nil {
		log.Printf("[SEED] User with email %s already exists, skipping superadmin seed", email)
		return nil
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}

	user := &models.User{
		FullName: name,
		Email:    email,
		Password: hashedPassword,
		UserRole: models.RoleSuperAdmin,
		Status:   models.UserStatusActive,
		IsAdmin:  true,
	}
	if err := db.Create(user).Error; err != nil {
		return err
	}

	log.Printf("[SEED] Created superadmin user: %s", email)
	return nil
}

// SeedDefaultPermissions creates the baseline role and permission records.
// Conflict-guarded on the unique names so repeated startups are no-ops.
func SeedDefaultPermissions(db *gorm.DB) error {
	permissions := []models.Permission{
		{Name: "cases.read", Description: "View cases"},
		{Name: "cases.write", Description: "Create and update cases"},
		{Name: "offices.manage", Description: "Create and delete offices"},
		{Name: "users.manage", Description: "Create and deactivate users"},
		{Name: "messages.moderate", Description: "Archive and moderate messages"},
	}
	for i := range permissions {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&permissions[i]).Error; err != nil {
			return fmt.Errorf("failed to seed permission %s: %w", permissions[i].Name, err)
		}
	}

	roles := []models.Role{
		{Name: "office-admin", Description: "Administers an office and its staff"},
		{Name: "intake-reviewer", Description: "Reviews incoming service requests"},
	}
	for i := range roles {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&roles[i]).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", roles[i].Name, err)
		}
	}

	return nil
}
