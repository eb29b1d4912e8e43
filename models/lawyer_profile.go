package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lawyer profile status constants
const (
	LawyerStatusPending     = "PENDING"
	LawyerStatusActive      = "ACTIVE"
	LawyerStatusUnavailable = "UNAVAILABLE"
)

// LawyerProfile is the role-specific profile for users with role LAWYER.
type LawyerProfile struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID string `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Status          string  `gorm:"not null;default:PENDING" json:"status"`
	Specializations string  `gorm:"type:text" json:"specializations"` // comma-separated
	ExperienceYears int     `gorm:"not null;default:0" json:"experience_years"`
	Rating          float64 `gorm:"not null;default:0" json:"rating"`
	CaseLoad        int     `gorm:"not null;default:0" json:"case_load"`
	Availability    string  `gorm:"default:FULL_TIME" json:"availability"`

	OfficeID *string `gorm:"type:uuid;index" json:"office_id,omitempty"`
	Office   *Office `gorm:"foreignKey:OfficeID" json:"office,omitempty"`
}

func (lp *LawyerProfile) BeforeCreate(tx *gorm.DB) error {
	if lp.ID == "" {
		lp.ID = uuid.New().String()
	}
	return nil
}

func (LawyerProfile) TableName() string {
	return "lawyer_profiles"
}
