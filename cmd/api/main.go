package main

import (
	"fmt"
	"net/http"
	"os"

	"cashira/internal/config"
	"cashira/internal/currency"
	"cashira/internal/database"
	"cashira/internal/handlers"
	"cashira/internal/identity"
	"cashira/internal/logger"
	"cashira/internal/middleware"
	"cashira/internal/services"
	"cashira/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "cashira/internal/docs" // Import swagger docs
)

// @title           Cashira API
// @version         1.0
// @description     Cashira is a personal finance application: record income and expense transactions, view aggregated statistics and charts, and manage currency and theme preferences.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	transactionService := services.NewTransactionService(db)
	statsService := services.NewStatsService(transactionService)

	// External capabilities
	verifier := identity.NewGoogleVerifier(appConfig.GoogleClientID)
	geoLookup := currency.NewGeoIPClient(nil, appConfig.GeoAPIURL)

	// Handlers
	authHandler := handlers.NewAuthHandler(verifier, userService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, statsService)
	statsHandler := handlers.NewStatsHandler(statsService)
	preferenceHandler := handlers.NewPreferenceHandler(userService, geoLookup)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware. Credentials are required because the session
	// travels in a cookie.
	router.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/signin", authHandler.Signin)
	auth.POST("/signout", authHandler.Signout)
	auth.GET("/me", authHandler.Me)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.SessionAuth())

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.Create)
	transactions.GET("", transactionHandler.List)
	transactions.GET("/grouped", transactionHandler.ListGrouped)
	transactions.GET("/:id", transactionHandler.GetByID)
	transactions.PUT("/:id", transactionHandler.Update)
	transactions.DELETE("/:id", transactionHandler.Delete)

	// Stats routes
	statsGroup := protected.Group("/stats")
	statsGroup.GET("/totals", statsHandler.Totals)
	statsGroup.GET("/chart", statsHandler.Chart)
	statsGroup.GET("/categories", statsHandler.Categories)
	statsGroup.GET("/summary", statsHandler.Summary)

	// Preference routes
	preferences := protected.Group("/preferences")
	preferences.GET("", preferenceHandler.Get)
	preferences.PUT("", preferenceHandler.Update)

	log.Infof("Starting Cashira backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
