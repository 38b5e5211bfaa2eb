package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/aoja-labs/jobscan-api/internal/api"
	"github.com/aoja-labs/jobscan-api/internal/database"
	"github.com/aoja-labs/jobscan-api/internal/logger"
	"github.com/aoja-labs/jobscan-api/internal/middleware"
	"github.com/aoja-labs/jobscan-api/pkg/config"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize configuration
	cfg := config.New()

	// Initialize structured logging
	appLogger, err := logger.New(cfg.IsProduction(), cfg.IsDevelopment())
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		appLogger.Fatal("failed to connect to database", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		appLogger.Fatal("failed to run migrations", err)
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := gin.New()

	if err := r.SetTrustedProxies(cfg.GetTrustedProxies()); err != nil {
		appLogger.Fatal("failed to set trusted proxies", err)
	}

	// Add security middleware
	r.Use(middleware.LoggingMiddleware(appLogger))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CORSMiddleware(cfg))
	r.Use(middleware.InputValidationMiddleware(cfg))

	// Add rate limiting in production
	if cfg.EnableRateLimit {
		r.Use(middleware.RateLimitingMiddleware())
	}

	// Add recovery middleware
	r.Use(gin.Recovery())

	// Setup API routes
	if err := api.SetupRoutes(r, db, cfg, appLogger); err != nil {
		appLogger.Fatal("failed to setup API routes", err)
	}

	// Start server
	appLogger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
	if err := r.Run(":" + cfg.Port); err != nil {
		appLogger.Fatal("server exited", err)
	}
}
