package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aoja-labs/jobscan-api/internal/auth"
	"github.com/aoja-labs/jobscan-api/internal/database"
	"github.com/aoja-labs/jobscan-api/internal/logger"
	"github.com/aoja-labs/jobscan-api/internal/services"
	"github.com/aoja-labs/jobscan-api/pkg/config"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, db *database.DB, cfg *config.Config, log logger.Logger) error {
	// Create centralized services
	svcs := services.NewServices(db.DB, cfg, log)

	// Create handlers with proper service injection
	authHandler := NewAuthHandler(svcs.Auth)
	scanHandler := NewScanHandler(svcs.Scan)
	creditHandler := NewCreditHandler(svcs.Credit, svcs.Payment)
	webhookHandler := NewWebhookHandler(svcs.Payment, log)

	// Public routes
	public := r.Group("/api/v1")
	{
		public.POST("/auth/register", authHandler.Register)
		public.POST("/auth/login", authHandler.Login)
		public.POST("/auth/refresh", authHandler.RefreshToken)

		// Stripe calls this, not browsers
		public.POST("/webhooks/stripe", webhookHandler.HandleStripe)

		public.GET("/health", func(c *gin.Context) {
			if err := db.HealthCheck(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}

	// Scan scoring works for anonymous callers in preview mode, so the
	// route takes optional auth instead of the required middleware
	optional := r.Group("/api/v1")
	optional.Use(auth.OptionalJWTMiddleware(cfg.JWTSecret))
	{
		optional.POST("/scans", scanHandler.ScanJob)
	}

	// Protected routes
	protected := r.Group("/api/v1")
	protected.Use(auth.JWTMiddleware(cfg.JWTSecret))
	{
		protected.GET("/users/me/credits", creditHandler.GetBalance)
		protected.GET("/users/me/profile", scanHandler.GetProfile)
		protected.GET("/users/me/scans", scanHandler.GetScans)
		protected.POST("/users/me/retake-survey", scanHandler.RetakeSurvey)
		protected.POST("/users/me/scans/transfer", scanHandler.TransferPendingScan)

		protected.POST("/checkout/session", creditHandler.CreateCheckoutSession)
	}

	return nil
}
