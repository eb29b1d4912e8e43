package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// HealthHandler reports process and database liveness.
type HealthHandler struct {
	DB *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{DB: db}
}

func (h *HealthHandler) Check(c echo.Context) error {
	sqlDB, err := h.DB.DB()
	if err != nil {
		return respondError(c, http.StatusServiceUnavailable, "database unavailable")
	}
	if err := sqlDB.Ping(); err != nil {
		return respondError(c, http.StatusServiceUnavailable, "database unavailable")
	}
	return respondData(c, http.StatusOK, map[string]string{"status": "ok"})
}
