package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aoja-labs/jobscan-api/internal/models"
)

// userRepository implements UserRepository
type userRepository struct {
	db dbExecutor
}

// NewUserRepository creates a new user repository
func NewUserRepository(db dbExecutor) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var stripeCustomerID sql.NullString

	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Role,
		&user.CreditsRemaining, &stripeCustomerID,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.StripeCustomerID = stripeCustomerID.String
	return user, nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(id uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, role, credits_remaining, stripe_customer_id, created_at, updated_at
		FROM users WHERE id = $1
	`

	user, err := r.scanUser(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, role, credits_remaining, stripe_customer_id, created_at, updated_at
		FROM users WHERE email = $1
	`

	user, err := r.scanUser(r.db.QueryRow(query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user with email %s not found", email)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// Create creates a new user
func (r *userRepository) Create(user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (id, email, password_hash, role, credits_remaining, stripe_customer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)
	`

	_, err := r.db.Exec(query,
		user.ID, user.Email, user.PasswordHash, user.Role,
		user.CreditsRemaining, user.StripeCustomerID,
		user.CreatedAt, user.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// Update updates an existing user
func (r *userRepository) Update(user *models.User) error {
	user.UpdatedAt = time.Now()

	query := `
		UPDATE users SET
			email = $2, password_hash = $3, role = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(query,
		user.ID, user.Email, user.PasswordHash, user.Role, user.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}

// Delete deletes a user
func (r *userRepository) Delete(id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}

// GetCredits returns the user's current credit balance
func (r *userRepository) GetCredits(id uuid.UUID) (int, error) {
	query := `SELECT credits_remaining FROM users WHERE id = $1`

	var credits int
	if err := r.db.QueryRow(query, id).Scan(&credits); err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("user not found")
		}
		return 0, fmt.Errorf("failed to get credits: %w", err)
	}

	return credits, nil
}

// DeductCredit performs a compare-and-decrement on the credit balance.
// Concurrent scans on the same account cannot double-spend: the WHERE clause
// only matches while the balance is positive.
func (r *userRepository) DeductCredit(id uuid.UUID) (bool, error) {
	query := `
		UPDATE users SET credits_remaining = credits_remaining - 1, updated_at = $2
		WHERE id = $1 AND credits_remaining > 0
	`

	result, err := r.db.Exec(query, id, time.Now())
	if err != nil {
		return false, fmt.Errorf("failed to deduct credit: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// AddCredits grants credits to a user
func (r *userRepository) AddCredits(id uuid.UUID, amount int) error {
	query := `
		UPDATE users SET credits_remaining = credits_remaining + $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.db.Exec(query, id, amount, time.Now())
	if err != nil {
		return fmt.Errorf("failed to add credits: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}

// SetStripeCustomerID records the Stripe customer created for a user
func (r *userRepository) SetStripeCustomerID(id uuid.UUID, customerID string) error {
	query := `
		UPDATE users SET stripe_customer_id = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.db.Exec(query, id, customerID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to set stripe customer id: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}
