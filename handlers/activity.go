package handlers

import (
	"legal_aid_app_go/config"
	"legal_aid_app_go/services"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ActivityHandler serves the system-wide audit trail.
type ActivityHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewActivityHandler(db *gorm.DB, cfg *config.Config) *ActivityHandler {
	return &ActivityHandler{DB: db, Cfg: cfg}
}

// List returns recent audit records, optionally filtered by resource type.
func (h *ActivityHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	activities, err := services.ListActivities(h.DB, c.QueryParam("resource_type"), limit)
	if err != nil {
		return respondInternal(c, h.Cfg.Environment, err)
	}
	return respondData(c, http.StatusOK, activities)
}
