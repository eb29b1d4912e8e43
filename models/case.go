package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Case status constants
const (
	CaseStatusOpen       = "OPEN"
	CaseStatusInProgress = "IN_PROGRESS"
	CaseStatusOnHold     = "ON_HOLD"
	CaseStatusClosed     = "CLOSED"
)

// Case priority constants
const (
	CasePriorityLow    = "LOW"
	CasePriorityMedium = "MEDIUM"
	CasePriorityHigh   = "HIGH"
	CasePriorityUrgent = "URGENT"
)

// Case represents a legal-aid case
type Case struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"not null;default:OPEN;index" json:"status"`
	Priority    string `gorm:"not null;default:MEDIUM" json:"priority"`
	Category    string `json:"category"`

	// Client contact fields (clients are not always registered users)
	ClientName  string `gorm:"not null" json:"client_name"`
	ClientEmail string `json:"client_email"`
	ClientPhone string `json:"client_phone"`

	// Assignment
	AssignedLawyerID *string        `gorm:"type:uuid;index" json:"assigned_lawyer_id,omitempty"`
	AssignedLawyer   *LawyerProfile `gorm:"foreignKey:AssignedLawyerID" json:"assigned_lawyer,omitempty"`

	OfficeID *string `gorm:"type:uuid;index" json:"office_id,omitempty"`
	Office   *Office `gorm:"foreignKey:OfficeID" json:"office,omitempty"`

	Tags string `gorm:"type:text" json:"tags"` // comma-separated free-form tags

	// Scoring fields used for triage and assignment
	ComplexityScore   int `gorm:"not null;default:0" json:"complexity_score"`
	RiskScore         int `gorm:"not null;default:0" json:"risk_score"`
	ResourceIntensity int `gorm:"not null;default:0" json:"resource_intensity"`
	StakeholderImpact int `gorm:"not null;default:0" json:"stakeholder_impact"`

	Activities []CaseActivity `gorm:"foreignKey:CaseID" json:"activities,omitempty"`
}

func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

func (Case) TableName() string {
	return "cases"
}

// CaseActivity is an append-only audit record attached to a case.
// Rows are never mutated after creation.
type CaseActivity struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CaseID string  `gorm:"type:uuid;not null;index" json:"case_id"`
	UserID *string `gorm:"type:uuid" json:"user_id,omitempty"`

	Action      string `gorm:"not null" json:"action"`
	Description string `gorm:"type:text" json:"description"`
}

func (ca *CaseActivity) BeforeCreate(tx *gorm.DB) error {
	if ca.ID == "" {
		ca.ID = uuid.New().String()
	}
	return nil
}

func (CaseActivity) TableName() string {
	return "case_activities"
}
