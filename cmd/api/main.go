package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"dreamfund/internal/config"
	"dreamfund/internal/database"
	"dreamfund/internal/handlers"
	"dreamfund/internal/logger"
	"dreamfund/internal/middleware"
	"dreamfund/internal/services"
	"dreamfund/internal/storage"
	"dreamfund/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "dreamfund/internal/docs" // Import swagger docs
)

// @title           Dreamfund API
// @version         1.0
// @description     Dreamfund lets users define a savings dream, record contributions toward it, and track progress against their deadline.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize image storage
	store, err := storage.NewGCSStore(context.Background(), appConfig.StorageBucket, appConfig.StorageCredentials)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	dreamService := services.NewDreamService(db)
	imageService := services.NewImageService(store, appConfig.MaxUploadBytes)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	dreamHandler := handlers.NewDreamHandler(dreamService, imageService, auditService)
	imageHandler := handlers.NewImageHandler(imageService, auditService, appConfig.MaxUploadBytes)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoints
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/api/health/storage", func(c *gin.Context) {
		ok, err := imageService.BucketExists(c.Request.Context())
		if err != nil || !ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// Session
	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/profile", authHandler.GetProfile)

	// Dream routes
	dream := protected.Group("/dream")
	dream.GET("", dreamHandler.GetDream)
	dream.POST("", dreamHandler.CreateDream)
	dream.PUT("", dreamHandler.UpdateDream)
	dream.POST("/savings", dreamHandler.AddSavings)
	dream.GET("/savings", dreamHandler.GetContributions)
	dream.GET("/progress", dreamHandler.GetProgress)
	dream.POST("/migrate", dreamHandler.MigrateLocalCache)
	dream.POST("/image", imageHandler.Upload)

	log.Infof("Starting Dreamfund backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
