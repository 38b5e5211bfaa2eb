package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/aoja-labs/jobscan-api/internal/repository"
)

// creditServiceImpl implements CreditService
type creditServiceImpl struct {
	repos *repository.Repositories
}

// newCreditService creates a new credit service implementation
func newCreditService(repos *repository.Repositories) CreditService {
	return &creditServiceImpl{repos: repos}
}

// Balance returns the user's credit balance
func (s *creditServiceImpl) Balance(userID uuid.UUID) (*repository.CreditBalance, error) {
	credits, err := s.repos.User.GetCredits(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	return &repository.CreditBalance{
		CreditsRemaining: credits,
		CanScan:          credits > 0,
	}, nil
}

// Grant adds credits to a user's balance
func (s *creditServiceImpl) Grant(userID uuid.UUID, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("grant amount must be positive, got %d", amount)
	}

	if err := s.repos.User.AddCredits(userID, amount); err != nil {
		return fmt.Errorf("failed to grant credits: %w", err)
	}

	return nil
}
