package services

import (
	"errors"
	"fmt"
	"legal_aid_app_go/models"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RegisterInput is the request to provision a user plus its role profile.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     string
	Phone    *string
	Address  *string
}

// RegisterResult is the provisioning outcome: the created user (safe fields
// only via json tags) and a role-specific guidance message.
type RegisterResult struct {
	User     *models.User `json:"user"`
	Guidance string       `json:"message"`
}

// RegisterUser provisions a User and, for LAWYER/COORDINATOR roles, its
// dependent profile in a single transaction. Either every row exists after
// the call or none does.
func RegisterUser(db *gorm.DB, input RegisterInput) (*RegisterResult, error) {
	if !models.ValidUserRoles[input.Role] {
		return nil, ErrInvalidRole
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName: input.FullName,
		Email:    input.Email,
		Password: hashed,
		Phone:    input.Phone,
		Address:  input.Address,
		UserRole: input.Role,
		Status:   models.UserStatusActive,
		IsAdmin:  input.Role == models.RoleAdmin || input.Role == models.RoleSuperAdmin,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		// Pre-check gives a clean error for the common case; the unique
		// index on users.email decides the concurrent race.
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check existing email: %w", err)
		}
		if count > 0 {
			return ErrDuplicateEmail
		}

		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		switch input.Role {
		case models.RoleLawyer:
			office, err := EnsureDefaultOffice(tx)
			if err != nil {
				return err
			}
			profile := &models.LawyerProfile{
				UserID:   user.ID,
				Status:   models.LawyerStatusPending,
				OfficeID: &office.ID,
			}
			if err := tx.Create(profile).Error; err != nil {
				return fmt.Errorf("failed to create lawyer profile: %w", err)
			}
			user.LawyerProfile = profile

		case models.RoleCoordinator:
			coordinator := &models.Coordinator{
				UserID: user.ID,
				Type:   models.CoordinatorTypePending,
				Status: models.CoordinatorStatusPending,
			}
			if err := tx.Create(coordinator).Error; err != nil {
				return fmt.Errorf("failed to create coordinator profile: %w", err)
			}
			user.Coordinator = coordinator
		}

		return nil
	})
	if err != nil {
		if isDuplicateEmailErr(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return &RegisterResult{User: user, Guidance: guidanceForRole(input.Role)}, nil
}

// CoordinatorInput is the admin-driven coordinator creation request.
type CoordinatorInput struct {
	Email       string
	Password    string
	FullName    string
	Phone       *string
	Type        string
	Specialties string
	OfficeID    *string
}

// CreateCoordinator provisions a coordinator user on behalf of an admin.
// The user, the coordinator profile, and the audit record are committed
// together or not at all.
func CreateCoordinator(db *gorm.DB, input CoordinatorInput, actorID string) (*models.Coordinator, error) {
	hashed, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	coordinatorType := input.Type
	if coordinatorType == "" {
		coordinatorType = models.CoordinatorTypePending
	}

	var coordinator *models.Coordinator

	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check existing email: %w", err)
		}
		if count > 0 {
			return ErrDuplicateEmail
		}

		user := &models.User{
			FullName: input.FullName,
			Email:    input.Email,
			Password: hashed,
			Phone:    input.Phone,
			UserRole: models.RoleCoordinator,
			Status:   models.UserStatusActive,
		}
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		coordinator = &models.Coordinator{
			UserID:      user.ID,
			Type:        coordinatorType,
			Status:      models.CoordinatorStatusPending,
			Specialties: input.Specialties,
			OfficeID:    input.OfficeID,
		}
		if err := tx.Create(coordinator).Error; err != nil {
			return fmt.Errorf("failed to create coordinator profile: %w", err)
		}
		coordinator.User = user

		activity := &models.Activity{
			UserID:       ptrIfNotEmpty(actorID),
			Action:       models.ActivityActionCreate,
			ResourceType: "Coordinator",
			ResourceID:   coordinator.ID,
			Description:  fmt.Sprintf("Created coordinator account for %s", input.Email),
		}
		if err := tx.Create(activity).Error; err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}

		return nil
	})
	if err != nil {
		if isDuplicateEmailErr(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return coordinator, nil
}

// EnsureDefaultOffice returns the well-known default office, creating it if
// absent. The insert is conflict-guarded on the unique office name, so two
// concurrent first-time provisioning calls cannot both create it.
func EnsureDefaultOffice(tx *gorm.DB) (*models.Office, error) {
	candidate := &models.Office{
		Name:   models.DefaultOfficeName,
		Type:   models.OfficeTypeHeadquarters,
		Status: models.OfficeStatusActive,
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(candidate).Error; err != nil {
		return nil, fmt.Errorf("failed to ensure default office: %w", err)
	}

	// Re-read so the winner of a concurrent race is returned either way
	var office models.Office
	if err := tx.Where("name = ?", models.DefaultOfficeName).First(&office).Error; err != nil {
		return nil, fmt.Errorf("failed to load default office: %w", err)
	}
	return &office, nil
}

func guidanceForRole(role string) string {
	switch role {
	case models.RoleLawyer:
		return "Account created. Complete your lawyer profile setup to start receiving cases."
	case models.RoleCoordinator:
		return "Account created. Complete your coordinator profile setup to be assigned an office."
	default:
		return "Account created successfully."
	}
}

// isDuplicateEmailErr maps the store's unique-constraint violation on
// users.email, which decides concurrent registrations for the same address.
func isDuplicateEmailErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDuplicateEmail) {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed: users.email")
}

// ptrIfNotEmpty returns a pointer to the string if not empty, nil otherwise
func ptrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
