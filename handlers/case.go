package handlers

import (
	"errors"
	"legal_aid_app_go/config"
	"legal_aid_app_go/middleware"
	"legal_aid_app_go/services"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CaseHandler serves case management.
type CaseHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCaseHandler(db *gorm.DB, cfg *config.Config) *CaseHandler {
	return &CaseHandler{DB: db, Cfg: cfg}
}

type createCaseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Category    string `json:"category,omitempty"`

	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email,omitempty"`
	ClientPhone string `json:"client_phone,omitempty"`

	AssignedLawyerID *string `json:"assigned_lawyer_id,omitempty"`
	OfficeID         *string `json:"office_id,omitempty"`
	Tags             string  `json:"tags,omitempty"`

	ComplexityScore   int `json:"complexity_score,omitempty"`
	RiskScore         int `json:"risk_score,omitempty"`
	ResourceIntensity int `json:"resource_intensity,omitempty"`
	StakeholderImpact int `json:"stakeholder_impact,omitempty"`
}

// Create opens a case paired with its initial activity record.
func (h *CaseHandler) Create(c echo.Context) error {
	actor := middleware.GetCurrentUser(c)

	var req createCaseRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Title == "" || req.ClientName == "" {
		return respondError(c, http.StatusBadRequest, "Title and client name are required")
	}

	kase, err := services.CreateCase(h.DB, services.CaseInput{
		Title:             req.Title,
		Description:       req.Description,
		Priority:          req.Priority,
		Category:          req.Category,
		ClientName:        req.ClientName,
		ClientEmail:       req.ClientEmail,
		ClientPhone:       req.ClientPhone,
		AssignedLawyerID:  req.AssignedLawyerID,
		OfficeID:          req.OfficeID,
		Tags:              req.Tags,
		ComplexityScore:   req.ComplexityScore,
		RiskScore:         req.RiskScore,
		ResourceIntensity: req.ResourceIntensity,
		StakeholderImpact: req.StakeholderImpact,
	}, actor.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return respondError(c, http.StatusNotFound, "Assigned lawyer not found")
		}
		return respondInternal(c, h.Cfg.Environment, err)
	}

	return respondData(c, http.StatusCreated, kase)
}

// Get returns a case with its audit trail.
func (h *CaseHandler) Get(c echo.Context) error {
	kase, err := services.GetCase(h.DB, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return respondError(c, http.StatusNotFound, "Case not found")
		}
		return respondInternal(c, h.Cfg.Environment, err)
	}
	return respondData(c, http.StatusOK, kase)
}

// List returns cases, optionally filtered by status.
func (h *CaseHandler) List(c echo.Context) error {
	cases, err := services.ListCases(h.DB, c.QueryParam("status"))
	if err != nil {
		return respondInternal(c, h.Cfg.Environment, err)
	}
	return respondData(c, http.StatusOK, cases)
}
