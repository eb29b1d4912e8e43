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

// AuthHandler serves registration and login.
type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg}
}

type registerRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName string  `json:"full_name"`
	Role     string  `json:"role"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
}

// Register provisions a user plus its role profile in one transaction.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" || req.FullName == "" || req.Role == "" {
		return respondError(c, http.StatusBadRequest, "Email, password, full name, and role are required")
	}

	result, err := services.RegisterUser(h.DB, services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRole):
			return respondError(c, http.StatusBadRequest, "Invalid role")
		case errors.Is(err, services.ErrDuplicateEmail):
			return respondError(c, http.StatusBadRequest, "Email already exists")
		default:
			return respondInternal(c, h.Cfg.Environment, err)
		}
	}

	services.SendWelcomeEmail(h.Cfg, result.User, result.Guidance)
	services.LogActivity(h.DB, result.User.ID, models.ActivityActionCreate, "User", result.User.ID,
		"User registered", map[string]string{"role": result.User.UserRole})

	return respondData(c, http.StatusCreated, map[string]interface{}{
		"user":    result.User,
		"message": result.Guidance,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a user and issues an access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return respondError(c, http.StatusBadRequest, "Email and password are required")
	}

	user, err := services.Authenticate(h.DB, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return respondError(c, http.StatusUnauthorized, "Invalid email or password")
		}
		return respondInternal(c, h.Cfg.Environment, err)
	}

	token, err := services.IssueAccessToken(user.ID, user.Email, user.UserRole, user.IsAdmin,
		h.Cfg.JWTSecret, services.DefaultTokenDuration)
	if err != nil {
		return respondInternal(c, h.Cfg.Environment, err)
	}

	return respondData(c, http.StatusOK, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return respondError(c, http.StatusUnauthorized, "Authentication required")
	}
	return respondData(c, http.StatusOK, user)
}
