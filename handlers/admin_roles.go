package handlers

import (
	"errors"
	"legal_aid_app_go/config"
	"legal_aid_app_go/services"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// RoleHandler serves role/permission administration.
type RoleHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewRoleHandler(db *gorm.DB, cfg *config.Config) *RoleHandler {
	return &RoleHandler{DB: db, Cfg: cfg}
}

type togglePermissionRequest struct {
	PermissionID string `json:"permission_id"`
}

// TogglePermission grants the permission if absent, revokes it if present,
// and returns the role with its updated permission set.
func (h *RoleHandler) TogglePermission(c echo.Context) error {
	roleID := c.Param("id")

	var req togglePermissionRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.PermissionID == "" {
		return respondError(c, http.StatusBadRequest, "permission_id is required")
	}

	role, err := services.TogglePermission(h.DB, roleID, req.PermissionID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return respondError(c, http.StatusNotFound, "Role or permission not found")
		}
		return respondInternal(c, h.Cfg.Environment, err)
	}

	return respondData(c, http.StatusOK, role)
}

// GetRole returns a role with its permission set.
func (h *RoleHandler) GetRole(c echo.Context) error {
	role, err := services.GetRole(h.DB, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return respondError(c, http.StatusNotFound, "Role not found")
		}
		return respondInternal(c, h.Cfg.Environment, err)
	}
	return respondData(c, http.StatusOK, role)
}
