package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultOfficeName is the well-known fallback office assigned to new lawyers
// that have no office at creation time.
const DefaultOfficeName = "Main Office"

// Office type constants
const (
	OfficeTypeHeadquarters = "HEADQUARTERS"
	OfficeTypeBranch       = "BRANCH"
	OfficeTypeVirtual      = "VIRTUAL"
)

// Office status constants
const (
	OfficeStatusActive   = "ACTIVE"
	OfficeStatusInactive = "INACTIVE"
)

type Office struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string `gorm:"uniqueIndex;not null" json:"name"`
	Location string `json:"location"`
	Type     string `gorm:"not null;default:BRANCH" json:"type"`
	Status   string `gorm:"not null;default:ACTIVE" json:"status"`
	Capacity int    `gorm:"not null;default:0" json:"capacity"`

	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`

	// Staff attached to this office; the office is shared, not owned
	Coordinators    []Coordinator    `gorm:"foreignKey:OfficeID" json:"coordinators,omitempty"`
	Lawyers         []LawyerProfile  `gorm:"foreignKey:OfficeID" json:"lawyers,omitempty"`
	ServiceRequests []ServiceRequest `gorm:"foreignKey:OfficeID" json:"service_requests,omitempty"`
}

func (o *Office) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

func (Office) TableName() string {
	return "offices"
}
