package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity action constants
const (
	ActivityActionCreate = "CREATE"
	ActivityActionUpdate = "UPDATE"
	ActivityActionDelete = "DELETE"
)

// Activity is the system-wide append-only audit trail. Rows are owned by the
// user that generated them and never mutated after creation.
type Activity struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID *string `gorm:"type:uuid;index" json:"user_id,omitempty"`

	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null;index" json:"resource_type"`
	ResourceID   string `gorm:"index" json:"resource_id"`
	Description  string `gorm:"type:text" json:"description"`
	Metadata     string `gorm:"type:text" json:"metadata,omitempty"` // JSON blob
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

func (Activity) TableName() string {
	return "activities"
}
