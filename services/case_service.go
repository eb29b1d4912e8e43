package services

import (
	"errors"
	"fmt"
	"legal_aid_app_go/models"

	"gorm.io/gorm"
)

// CaseInput is the case creation request.
type CaseInput struct {
	Title       string
	Description string
	Priority    string
	Category    string

	ClientName  string
	ClientEmail string
	ClientPhone string

	AssignedLawyerID *string
	OfficeID         *string
	Tags             string

	ComplexityScore   int
	RiskScore         int
	ResourceIntensity int
	StakeholderImpact int
}

// CreateCase creates a case always paired with its initial activity record.
// Both rows commit together or not at all.
func CreateCase(db *gorm.DB, input CaseInput, actorID string) (*models.Case, error) {
	kase := &models.Case{
		Title:             input.Title,
		Description:       input.Description,
		Status:            models.CaseStatusOpen,
		Priority:          input.Priority,
		Category:          input.Category,
		ClientName:        input.ClientName,
		ClientEmail:       input.ClientEmail,
		ClientPhone:       input.ClientPhone,
		AssignedLawyerID:  input.AssignedLawyerID,
		OfficeID:          input.OfficeID,
		Tags:              input.Tags,
		ComplexityScore:   input.ComplexityScore,
		RiskScore:         input.RiskScore,
		ResourceIntensity: input.ResourceIntensity,
		StakeholderImpact: input.StakeholderImpact,
	}
	if kase.Priority == "" {
		kase.Priority = models.CasePriorityMedium
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if input.AssignedLawyerID != nil {
			var lawyer models.LawyerProfile
			if err := tx.First(&lawyer, "id = ?", *input.AssignedLawyerID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return fmt.Errorf("failed to load assigned lawyer: %w", err)
			}
		}

		if err := tx.Create(kase).Error; err != nil {
			return fmt.Errorf("failed to create case: %w", err)
		}

		activity := &models.CaseActivity{
			CaseID:      kase.ID,
			UserID:      ptrIfNotEmpty(actorID),
			Action:      models.ActivityActionCreate,
			Description: fmt.Sprintf("Case %q opened", kase.Title),
		}
		if err := tx.Create(activity).Error; err != nil {
			return fmt.Errorf("failed to record case activity: %w", err)
		}
		kase.Activities = []models.CaseActivity{*activity}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return kase, nil
}

// GetCase returns a case with its audit trail.
func GetCase(db *gorm.DB, caseID string) (*models.Case, error) {
	var kase models.Case
	err := db.Preload("Activities", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at ASC")
	}).First(&kase, "id = ?", caseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load case: %w", err)
	}
	return &kase, nil
}

// ListCases returns cases, optionally filtered by status.
func ListCases(db *gorm.DB, status string) ([]models.Case, error) {
	query := db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var cases []models.Case
	if err := query.Find(&cases).Error; err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	return cases, nil
}
