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

// OfficeHandler serves office management.
type OfficeHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewOfficeHandler(db *gorm.DB, cfg *config.Config) *OfficeHandler {
	return &OfficeHandler{DB: db, Cfg: cfg}
}

type createOfficeRequest struct {
	Name         string `json:"name"`
	Location     string `json:"location"`
	Type         string `json:"type,omitempty"`
	Capacity     int    `json:"capacity,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
}

// Create creates an office together with its audit record.
func (h *OfficeHandler) Create(c echo.Context) error {
	actor := middleware.GetCurrentUser(c)

	var req createOfficeRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Name == "" {
		return respondError(c, http.StatusBadRequest, "Office name is required")
	}

	office, err := services.CreateOffice(h.DB, services.OfficeInput{
		Name:         req.Name,
		Location:     req.Location,
		Type:         req.Type,
		Capacity:     req.Capacity,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	}, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return respondError(c, http.StatusBadRequest, "Office name already exists")
		}
		return respondInternal(c, h.Cfg.Environment, err)
	}

	return respondData(c, http.StatusCreated, office)
}

// List returns all offices with their staff.
func (h *OfficeHandler) List(c echo.Context) error {
	offices, err := services.ListOffices(h.DB)
	if err != nil {
		return respondInternal(c, h.Cfg.Environment, err)
	}
	return respondData(c, http.StatusOK, offices)
}

// Delete removes an office unless staff or open service requests are still
// attached to it.
func (h *OfficeHandler) Delete(c echo.Context) error {
	actor := middleware.GetCurrentUser(c)

	err := services.DeleteOffice(h.DB, c.Param("id"), actor.ID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return respondError(c, http.StatusNotFound, "Office not found")
		case errors.Is(err, services.ErrOfficeInUse):
			return respondError(c, http.StatusBadRequest, "Office has attached staff or active service requests")
		default:
			return respondInternal(c, h.Cfg.Environment, err)
		}
	}

	return respondData(c, http.StatusOK, map[string]string{"message": "Office deleted"})
}
