package middleware

import (
	"legal_aid_app_go/models"
	"legal_aid_app_go/services"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "middleware-test-secret"

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.User{}, &models.Coordinator{}, &models.LawyerProfile{}))
	return db
}

func createUser(t *testing.T, db *gorm.DB, role, status string, isAdmin bool) *models.User {
	user := &models.User{
		FullName: "MW User",
		Email:    role + "-" + status + "@test.com",
		Password: "hash",
		UserRole: role,
		IsAdmin:  isAdmin,
		Status:   status,
	}
	assert.NoError(t, db.Create(user).Error)
	return user
}

func runRequest(handler echo.HandlerFunc, mw echo.MiddlewareFunc, token string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := mw(handler)(c)
	return rec, err
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestRequireAuth(t *testing.T) {
	t.Run("Missing token", func(t *testing.T) {
		db := setupTestDB(t)
		_, err := runRequest(okHandler, RequireAuth(db, testSecret), "")
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("Garbage token", func(t *testing.T) {
		db := setupTestDB(t)
		_, err := runRequest(okHandler, RequireAuth(db, testSecret), "not.a.jwt")
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("Token signed with different key", func(t *testing.T) {
		db := setupTestDB(t)
		user := createUser(t, db, models.RoleClient, models.UserStatusActive, false)
		token, err := services.IssueAccessToken(user.ID, user.Email, user.UserRole, false, "other-secret", time.Hour)
		assert.NoError(t, err)

		_, err = runRequest(okHandler, RequireAuth(db, testSecret), token)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("Token for deleted user", func(t *testing.T) {
		db := setupTestDB(t)
		token, err := services.IssueAccessToken("33333333-3333-3333-3333-333333333333",
			"ghost@test.com", models.RoleClient, false, testSecret, time.Hour)
		assert.NoError(t, err)

		_, err = runRequest(okHandler, RequireAuth(db, testSecret), token)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("Suspended user", func(t *testing.T) {
		db := setupTestDB(t)
		user := createUser(t, db, models.RoleClient, models.UserStatusSuspended, false)
		token, err := services.IssueAccessToken(user.ID, user.Email, user.UserRole, false, testSecret, time.Hour)
		assert.NoError(t, err)

		_, err = runRequest(okHandler, RequireAuth(db, testSecret), token)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("Valid token loads user into context", func(t *testing.T) {
		db := setupTestDB(t)
		user := createUser(t, db, models.RoleLawyer, models.UserStatusActive, false)
		token, err := services.IssueAccessToken(user.ID, user.Email, user.UserRole, false, testSecret, time.Hour)
		assert.NoError(t, err)

		var seen *models.User
		handler := func(c echo.Context) error {
			seen = GetCurrentUser(c)
			return c.String(http.StatusOK, "ok")
		}

		rec, err := runRequest(handler, RequireAuth(db, testSecret), token)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotNil(t, seen)
		assert.Equal(t, user.ID, seen.ID)
	})
}

func TestRequireRole(t *testing.T) {
	run := func(user *models.User, roles ...string) error {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if user != nil {
			c.Set(ContextKeyUser, user)
		}
		return RequireRole(roles...)(okHandler)(c)
	}

	t.Run("No authenticated user", func(t *testing.T) {
		err := run(nil, models.RoleAdmin)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("Role not allowed", func(t *testing.T) {
		user := &models.User{UserRole: models.RoleClient, Status: models.UserStatusActive}
		err := run(user, models.RoleAdmin, models.RoleCoordinator)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})

	t.Run("Role allowed", func(t *testing.T) {
		user := &models.User{UserRole: models.RoleCoordinator, Status: models.UserStatusActive}
		assert.NoError(t, run(user, models.RoleAdmin, models.RoleCoordinator))
	})

	t.Run("Admin flag bypasses role list", func(t *testing.T) {
		user := &models.User{UserRole: models.RoleClient, IsAdmin: true, Status: models.UserStatusActive}
		assert.NoError(t, run(user, models.RoleAdmin))
	})
}
