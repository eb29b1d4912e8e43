package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// envelope is the JSON shape every API response uses:
// {success: true, data: ...} or {success: false, error: ...}
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respondData(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, envelope{Success: true, Data: data})
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, envelope{Success: false, Error: message})
}

// HTTPErrorHandler renders errors raised outside a handler (auth middleware,
// routing) in the same envelope the handlers use. Wired as echo's
// HTTPErrorHandler so every response on the API shares one shape.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "An unexpected error occurred"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	} else {
		log.Printf("[ERROR] %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	if writeErr := respondError(c, status, message); writeErr != nil {
		log.Printf("[ERROR] Failed to write error response: %v", writeErr)
	}
}

// respondInternal logs the underlying error server-side and returns a generic
// message; the detail is attached only outside production.
func respondInternal(c echo.Context, environment string, err error) error {
	log.Printf("[ERROR] %s %s: %v", c.Request().Method, c.Request().URL.Path, err)

	message := "An unexpected error occurred"
	if environment != "production" {
		message = err.Error()
	}
	return respondError(c, http.StatusInternalServerError, message)
}
