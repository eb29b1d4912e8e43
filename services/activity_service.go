package services

import (
	"encoding/json"
	"legal_aid_app_go/models"
	"log"

	"gorm.io/gorm"
)

// LogActivity appends a system-wide audit record asynchronously so request
// handlers never block on audit writes. Records are append-only.
func LogActivity(db *gorm.DB, actorID, action, resourceType, resourceID, description string, metadata interface{}) {
	go func() {
		var metaJSON string
		if metadata != nil {
			if bytes, err := json.Marshal(metadata); err == nil {
				metaJSON = string(bytes)
			}
		}

		activity := models.Activity{
			UserID:       ptrIfNotEmpty(actorID),
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			Description:  description,
			Metadata:     metaJSON,
		}

		if err := db.Create(&activity).Error; err != nil {
			log.Printf("[AUDIT] Failed to create activity record: %v", err)
		}
	}()
}

// ListActivities returns the most recent audit records for a resource type.
func ListActivities(db *gorm.DB, resourceType string, limit int) ([]models.Activity, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := db.Order("created_at DESC").Limit(limit)
	if resourceType != "" {
		query = query.Where("resource_type = ?", resourceType)
	}

	var activities []models.Activity
	if err := query.Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}
