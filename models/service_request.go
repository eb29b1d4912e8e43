package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service request status constants
const (
	ServiceRequestStatusPending    = "PENDING"
	ServiceRequestStatusInProgress = "IN_PROGRESS"
	ServiceRequestStatusCompleted  = "COMPLETED"
	ServiceRequestStatusCancelled  = "CANCELLED"
)

// ServiceRequest is a client request for legal assistance routed to an office.
type ServiceRequest struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OfficeID string  `gorm:"type:uuid;not null;index" json:"office_id"`
	Office   *Office `gorm:"foreignKey:OfficeID" json:"office,omitempty"`

	UserID *string `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"not null;default:PENDING;index" json:"status"`
	Priority    string `gorm:"not null;default:MEDIUM" json:"priority"`
}

func (sr *ServiceRequest) BeforeCreate(tx *gorm.DB) error {
	if sr.ID == "" {
		sr.ID = uuid.New().String()
	}
	return nil
}

func (ServiceRequest) TableName() string {
	return "service_requests"
}
