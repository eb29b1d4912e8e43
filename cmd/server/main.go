package main

import (
	"legal_aid_app_go/config"
	"legal_aid_app_go/db"
	"legal_aid_app_go/handlers"
	"legal_aid_app_go/middleware"
	"legal_aid_app_go/models"
	"legal_aid_app_go/services"
	"log"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database (remote libsql when configured, local file otherwise)
	var err error
	if cfg.TursoDatabaseURL != "" {
		err = db.InitializeTurso(cfg.TursoDatabaseURL, cfg.TursoAuthToken, cfg.Environment)
	} else {
		err = db.Initialize(cfg.DBPath, cfg.Environment)
	}
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
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
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed baseline data
	if err := services.SeedSuperadminFromEnv(db.DB); err != nil {
		log.Fatalf("Failed to seed superadmin: %v", err)
	}
	if err := services.SeedDefaultPermissions(db.DB); err != nil {
		log.Fatalf("Failed to seed roles and permissions: %v", err)
	}

	// Observability and storage
	services.InitMetrics()
	services.InitializeStorage(cfg)

	// Create Echo instance
	e := echo.New()
	e.HTTPErrorHandler = handlers.HTTPErrorHandler

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	// Handlers
	authHandler := handlers.NewAuthHandler(db.DB, cfg)
	coordinatorHandler := handlers.NewCoordinatorHandler(db.DB, cfg)
	roleHandler := handlers.NewRoleHandler(db.DB, cfg)
	officeHandler := handlers.NewOfficeHandler(db.DB, cfg)
	caseHandler := handlers.NewCaseHandler(db.DB, cfg)
	messageHandler := handlers.NewMessageHandler(db.DB, cfg)
	activityHandler := handlers.NewActivityHandler(db.DB, cfg)
	healthHandler := handlers.NewHealthHandler(db.DB)

	// Public routes
	e.GET("/health", healthHandler.Check)
	e.GET("/metrics", echo.WrapHandler(services.MetricsHandler()))
	e.POST("/api/users/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	// Protected routes (authentication required)
	protected := e.Group("")
	protected.Use(middleware.RequireAuth(db.DB, cfg.JWTSecret))
	{
		protected.GET("/api/me", authHandler.Me)

		// Messaging (any authenticated user)
		protected.POST("/api/messages", messageHandler.Send)
		protected.POST("/api/messages/:id/reactions", messageHandler.React)
		protected.POST("/api/messages/:id/archive", messageHandler.Archive)
		protected.POST("/api/messages/:id/attachments", messageHandler.Attach)
		protected.GET("/api/threads/:id", messageHandler.GetThread)

		// Case routes (admins and coordinators)
		caseRoutes := protected.Group("/api/cases")
		caseRoutes.Use(middleware.RequireRole(models.RoleAdmin, models.RoleCoordinator))
		{
			caseRoutes.POST("", caseHandler.Create)
			caseRoutes.GET("", caseHandler.List)
			caseRoutes.GET("/:id", caseHandler.Get)
		}

		// Admin-only routes
		adminRoutes := protected.Group("")
		adminRoutes.Use(middleware.RequireRole(models.RoleAdmin))
		{
			adminRoutes.POST("/api/coordinators", coordinatorHandler.Create)
			adminRoutes.GET("/api/coordinators", coordinatorHandler.List)

			adminRoutes.POST("/api/offices", officeHandler.Create)
			adminRoutes.GET("/api/offices", officeHandler.List)
			adminRoutes.DELETE("/api/offices/:id", officeHandler.Delete)

			adminRoutes.GET("/api/admin/activities", activityHandler.List)

			adminRoutes.GET("/api/admin/roles/:id", roleHandler.GetRole)
			adminRoutes.POST("/api/admin/roles/:id/permissions", roleHandler.TogglePermission)
		}
	}

	// Start server
	log.Printf("Starting server on port %s (environment: %s)", cfg.ServerPort, cfg.Environment)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
