package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Coordinator type constants
const (
	CoordinatorTypePending  = "PENDING"
	CoordinatorTypeIntake   = "INTAKE"
	CoordinatorTypeRegional = "REGIONAL"
	CoordinatorTypeCase     = "CASE"
)

// Coordinator status constants
const (
	CoordinatorStatusPending  = "PENDING"
	CoordinatorStatusActive   = "ACTIVE"
	CoordinatorStatusInactive = "INACTIVE"
)

// Coordinator is the role-specific profile for users with role COORDINATOR.
// Created transactionally alongside its User and destroyed by cascade.
type Coordinator struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID string `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Type   string `gorm:"not null;default:PENDING" json:"type"`
	Status string `gorm:"not null;default:PENDING" json:"status"`

	OfficeID *string `gorm:"type:uuid;index" json:"office_id,omitempty"`
	Office   *Office `gorm:"foreignKey:OfficeID" json:"office,omitempty"`

	Specialties string     `gorm:"type:text" json:"specialties"` // comma-separated
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

func (co *Coordinator) BeforeCreate(tx *gorm.DB) error {
	if co.ID == "" {
		co.ID = uuid.New().String()
	}
	return nil
}

func (Coordinator) TableName() string {
	return "coordinators"
}
