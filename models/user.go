package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User role constants
const (
	RoleSuperAdmin  = "SUPER_ADMIN"
	RoleAdmin       = "ADMIN"
	RoleLawyer      = "LAWYER"
	RoleCoordinator = "COORDINATOR"
	RoleClient      = "CLIENT"
)

// User status constants
const (
	UserStatusActive    = "ACTIVE"
	UserStatusInactive  = "INACTIVE"
	UserStatusSuspended = "SUSPENDED"
)

// ValidUserRoles is the set of roles accepted at registration
var ValidUserRoles = map[string]bool{
	RoleSuperAdmin:  true,
	RoleAdmin:       true,
	RoleLawyer:      true,
	RoleCoordinator: true,
	RoleClient:      true,
}

type User struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FullName string  `gorm:"not null" json:"full_name"`
	Email    string  `gorm:"uniqueIndex;not null" json:"email"`
	Password string  `gorm:"not null" json:"-"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`

	UserRole      string     `gorm:"not null;default:CLIENT;index" json:"user_role"`
	Status        string     `gorm:"not null;default:ACTIVE" json:"status"`
	IsAdmin       bool       `gorm:"not null;default:false" json:"is_admin"`
	EmailVerified bool       `gorm:"not null;default:false" json:"email_verified"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`

	// Role-specific profiles (at most one of these per user)
	Coordinator   *Coordinator   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"coordinator,omitempty"`
	LawyerProfile *LawyerProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"lawyer_profile,omitempty"`
}

// BeforeCreate hook to generate UUID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// IsStaff reports whether the user holds an administrative role
func (u *User) IsStaff() bool {
	return u.IsAdmin || u.UserRole == RoleSuperAdmin || u.UserRole == RoleAdmin
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}
