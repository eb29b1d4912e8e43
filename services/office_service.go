package services

import (
	"errors"
	"fmt"
	"legal_aid_app_go/models"
	"strings"

	"gorm.io/gorm"
)

// OfficeInput is the office creation request.
type OfficeInput struct {
	Name         string
	Location     string
	Type         string
	Capacity     int
	ContactEmail string
	ContactPhone string
}

// CreateOffice creates an office and its audit record in one transaction.
func CreateOffice(db *gorm.DB, input OfficeInput, actorID string) (*models.Office, error) {
	office := &models.Office{
		Name:         input.Name,
		Location:     input.Location,
		Type:         input.Type,
		Status:       models.OfficeStatusActive,
		Capacity:     input.Capacity,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
	}
	if office.Type == "" {
		office.Type = models.OfficeTypeBranch
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(office).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) ||
				strings.Contains(err.Error(), "UNIQUE constraint failed: offices.name") {
				return gorm.ErrDuplicatedKey
			}
			return fmt.Errorf("failed to create office: %w", err)
		}

		activity := &models.Activity{
			UserID:       ptrIfNotEmpty(actorID),
			Action:       models.ActivityActionCreate,
			ResourceType: "Office",
			ResourceID:   office.ID,
			Description:  fmt.Sprintf("Created office %q", office.Name),
		}
		return tx.Create(activity).Error
	})
	if err != nil {
		return nil, err
	}

	return office, nil
}

// ListOffices returns all offices with their staff preloaded.
func ListOffices(db *gorm.DB) ([]models.Office, error) {
	var offices []models.Office
	if err := db.Preload("Coordinators").Preload("Lawyers").Find(&offices).Error; err != nil {
		return nil, fmt.Errorf("failed to list offices: %w", err)
	}
	return offices, nil
}

// DeleteOffice removes an office unless it still has attached staff or
// pending/in-progress service requests. The guard check, the delete, and the
// audit record commit together.
func DeleteOffice(db *gorm.DB, officeID, actorID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var office models.Office
		err := tx.Preload("Coordinators").
			Preload("Lawyers").
			Preload("ServiceRequests", "status IN ?", []string{
				models.ServiceRequestStatusPending,
				models.ServiceRequestStatusInProgress,
			}).
			First(&office, "id = ?", officeID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load office: %w", err)
		}

		if len(office.Coordinators) > 0 || len(office.Lawyers) > 0 || len(office.ServiceRequests) > 0 {
			return ErrOfficeInUse
		}

		if err := tx.Delete(&office).Error; err != nil {
			return fmt.Errorf("failed to delete office: %w", err)
		}

		activity := &models.Activity{
			UserID:       ptrIfNotEmpty(actorID),
			Action:       models.ActivityActionDelete,
			ResourceType: "Office",
			ResourceID:   office.ID,
			Description:  fmt.Sprintf("Deleted office %q", office.Name),
		}
		return tx.Create(activity).Error
	})
}
