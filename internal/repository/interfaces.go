package repository

import (
	"github.com/google/uuid"

	"github.com/aoja-labs/jobscan-api/internal/models"
)

// UserRepository defines the interface for user data access, including the
// credit ledger operations.
type UserRepository interface {
	// Basic CRUD operations
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id uuid.UUID) error

	// Credit ledger operations
	GetCredits(id uuid.UUID) (int, error)
	// DeductCredit atomically decrements the balance when it is positive.
	// Returns false when the user has no credits left.
	DeductCredit(id uuid.UUID) (bool, error)
	AddCredits(id uuid.UUID, amount int) error

	SetStripeCustomerID(id uuid.UUID, customerID string) error
}

// ScanRepository defines the interface for scan data access
type ScanRepository interface {
	Create(scan *models.Scan) error
	GetByUser(userID uuid.UUID) ([]models.Scan, error)
	GetLatestByUser(userID uuid.UUID) (*models.Scan, error)
	// DeactivateActive flips is_active off on the user's current scan.
	DeactivateActive(userID uuid.UUID) error
}

// TransactionManager defines the interface for database transaction management
type TransactionManager interface {
	WithTransaction(fn func(repos *Repositories) error) error
}

// Repositories groups all repository interfaces
type Repositories struct {
	User UserRepository
	Scan ScanRepository
	Tx   TransactionManager
}
