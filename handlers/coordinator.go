package handlers

import (
	"errors"
	"legal_aid_app_go/config"
	"legal_aid_app_go/middleware"
	"legal_aid_app_go/models"
	"legal_aid_app_go/services"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CoordinatorHandler serves admin-driven coordinator management.
type CoordinatorHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCoordinatorHandler(db *gorm.DB, cfg *config.Config) *CoordinatorHandler {
	return &CoordinatorHandler{DB: db, Cfg: cfg}
}

type createCoordinatorRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	FullName    string  `json:"full_name"`
	Phone       *string `json:"phone,omitempty"`
	Type        string  `json:"type,omitempty"`
	Specialties string  `json:"specialties,omitempty"`
	OfficeID    *string `json:"office_id,omitempty"`
}

// Create provisions a coordinator account and returns it with an access
// token so the coordinator can finish profile setup immediately.
func (h *CoordinatorHandler) Create(c echo.Context) error {
	actor := middleware.GetCurrentUser(c)

	var req createCoordinatorRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" || req.FullName == "" {
		return respondError(c, http.StatusBadRequest, "Email, password, and full name are required")
	}

	coordinator, err := services.CreateCoordinator(h.DB, services.CoordinatorInput{
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		Phone:       req.Phone,
		Type:        req.Type,
		Specialties: req.Specialties,
		OfficeID:    req.OfficeID,
	}, actor.ID)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			return respondError(c, http.StatusBadRequest, "Email already exists")
		}
		return respondInternal(c, h.Cfg.Environment, err)
	}

	token, err := services.IssueAccessToken(coordinator.User.ID, coordinator.User.Email,
		models.RoleCoordinator, false, h.Cfg.JWTSecret, services.DefaultTokenDuration)
	if err != nil {
		return respondInternal(c, h.Cfg.Environment, err)
	}

	return respondData(c, http.StatusOK, map[string]interface{}{
		"coordinator": coordinator,
		"token":       token,
	})
}

// List returns all coordinators with user and office preloaded.
func (h *CoordinatorHandler) List(c echo.Context) error {
	var coordinators []models.Coordinator
	if err := h.DB.Preload("User").Preload("Office").Find(&coordinators).Error; err != nil {
		return respondInternal(c, h.Cfg.Environment, err)
	}
	return respondData(c, http.StatusOK, coordinators)
}
