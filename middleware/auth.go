package middleware

import (
	"legal_aid_app_go/models"
	"legal_aid_app_go/services"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const (
	// ContextKeyUser is the context key for the authenticated user
	ContextKeyUser = "user"
	// ContextKeyClaims is the context key for the parsed token claims
	ContextKeyClaims = "claims"
)

// RequireAuth validates the Bearer token and loads the authenticated user
// into the request context.
func RequireAuth(db *gorm.DB, jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing or malformed token")
			}

			claims, err := services.ParseAccessToken(strings.TrimPrefix(header, "Bearer "), jwtSecret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			var user models.User
			if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unknown user")
			}

			if user.Status != models.UserStatusActive {
				return echo.NewHTTPError(http.StatusUnauthorized, "Account is not active")
			}

			c.Set(ContextKeyUser, &user)
			c.Set(ContextKeyClaims, claims)

			return next(c)
		}
	}
}

// RequireRole requires the authenticated user to hold one of the given roles.
// Admin-flagged users always pass.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(ContextKeyUser).(*models.User)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			if user.IsAdmin {
				return next(c)
			}

			for _, role := range roles {
				if user.UserRole == role {
					return next(c)
				}
			}

			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
	}
}

// GetCurrentUser returns the authenticated user from the request context
func GetCurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(ContextKeyUser).(*models.User)
	return user
}
