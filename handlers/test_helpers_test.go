package handlers

import (
	"io"
	"legal_aid_app_go/config"
	"legal_aid_app_go/middleware"
	"legal_aid_app_go/models"
	"legal_aid_app_go/services"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Unique shared memory name isolates tests while keeping a shared cache
	// for connections opened by async work
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.User{},
		&models.Coordinator{},
		&models.LawyerProfile{},
		&models.Office{},
		&models.ServiceRequest{},
		&models.Case{},
		&models.CaseActivity{},
		&models.Activity{},
		&models.Role{},
		&models.Permission{},
		&models.RolePermission{},
		&models.MessageThread{},
		&models.Message{},
		&models.ThreadParticipant{},
		&models.MessageReaction{},
		&models.MessageNotification{},
		&models.Attachment{},
	)
	assert.NoError(t, err)

	return testDB
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:   "test",
		JWTSecret:     "test-secret-test-secret-test-secret",
		EmailTestMode: true,
	}
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return e, c, rec
}

// createAdmin inserts an active admin and stores it in the request context
// the way the auth middleware would.
func createAdmin(t *testing.T, db *gorm.DB, c echo.Context) *models.User {
	hash, err := services.HashPassword("admin-password")
	assert.NoError(t, err)
	admin := &models.User{
		FullName: "Admin User",
		Email:    "admin@x.com",
		Password: hash,
		UserRole: models.RoleAdmin,
		IsAdmin:  true,
		Status:   models.UserStatusActive,
	}
	assert.NoError(t, db.Create(admin).Error)
	c.Set(middleware.ContextKeyUser, admin)
	return admin
}
