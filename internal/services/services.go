package services

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/aoja-labs/jobscan-api/internal/logger"
	"github.com/aoja-labs/jobscan-api/internal/models"
	"github.com/aoja-labs/jobscan-api/internal/repository"
	"github.com/aoja-labs/jobscan-api/internal/scoring"
	"github.com/aoja-labs/jobscan-api/pkg/config"
)

// Services contains all application services
type Services struct {
	Auth    AuthService
	Scan    ScanService
	Credit  CreditService
	Payment PaymentService
}

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Login(email, password string) (*repository.LoginResponse, error)
	Register(req *repository.RegisterRequest) (*models.User, error)
	ValidateToken(token string) (*models.User, error)
	RefreshToken(token string) (*repository.LoginResponse, error)
}

// ScanService defines the interface for scan business logic
type ScanService interface {
	// ScanJob scores a posting. A nil userID means an anonymous preview.
	ScanJob(userID *uuid.UUID, req *repository.ScanRequest) (*repository.ScanResponse, error)
	GetScans(userID uuid.UUID) ([]models.Scan, error)
	GetProfile(userID uuid.UUID) (*repository.ProfileResponse, error)
	RetakeSurvey(userID uuid.UUID) error
	TransferPendingScan(userID uuid.UUID, req *repository.TransferScanRequest) (*models.Scan, error)
}

// CreditService defines the interface for the credit ledger
type CreditService interface {
	Balance(userID uuid.UUID) (*repository.CreditBalance, error)
	Grant(userID uuid.UUID, amount int) error
}

// PaymentService defines the interface for checkout and webhooks
type PaymentService interface {
	CreateCheckoutSession(userID uuid.UUID, credits int) (*repository.CheckoutResponse, error)
	HandleWebhook(payload []byte, signature string) error
}

// NewServices creates a new Services instance with all dependencies
func NewServices(db *sql.DB, cfg *config.Config, log logger.Logger) *Services {
	repos := repository.NewRepositories(db)
	engine := scoring.NewScoringEngine()

	return &Services{
		Auth:    newAuthService(repos, cfg),
		Scan:    newScanService(repos, engine, log),
		Credit:  newCreditService(repos),
		Payment: newPaymentService(repos, cfg, log),
	}
}
