package repository

import (
	"time"

	"github.com/aoja-labs/jobscan-api/internal/models"
	"github.com/aoja-labs/jobscan-api/internal/scoring"
)

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role,omitempty"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents a login response with tokens
type LoginResponse struct {
	Token        string      `json:"token"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
	ExpiresAt    time.Time   `json:"expires_at"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CheckoutRequest represents a credit purchase request
type CheckoutRequest struct {
	Credits int `json:"credits_to_purchase" binding:"required,min=1,max=100"`
}

// CheckoutResponse carries the hosted checkout URL back to the client
type CheckoutResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

// CreditBalance represents a user's current credit state
type CreditBalance struct {
	CreditsRemaining int  `json:"credits_remaining"`
	CanScan          bool `json:"can_scan"`
}

// ScanRequest represents a job scan submission
type ScanRequest struct {
	JobDescription string               `json:"job_description" binding:"required"`
	Trauma         scoring.ProfileInput `json:"trauma" binding:"required"`
	// ConsumeCredit defaults to true for authenticated requests. Anonymous
	// requests are always previews regardless of this flag.
	ConsumeCredit *bool `json:"consume_credit,omitempty"`
}

// ShouldConsume reports whether the caller asked for a paid scan
func (r *ScanRequest) ShouldConsume() bool {
	return r.ConsumeCredit == nil || *r.ConsumeCredit
}

// ScanResponse wraps an engine result with billing context
type ScanResponse struct {
	*scoring.ScanResult
	CreditCost       int  `json:"credit_cost"`
	PreviewMode      bool `json:"preview_mode"`
	CreditsRemaining *int `json:"credits_remaining,omitempty"`
}

// TransferScanRequest persists a pending pre-signup scan to an account.
// Job description is optional: a survey-only transfer stores no results.
type TransferScanRequest struct {
	JobDescription string               `json:"job_description,omitempty"`
	Trauma         scoring.ProfileInput `json:"trauma" binding:"required"`
}

// ProfileResponse is the user's latest scan viewed as their profile
type ProfileResponse struct {
	Survey      *scoring.ProfileInput `json:"survey"`
	ScanResults *scoring.ScanResult   `json:"scan_results,omitempty"`
	ScanID      string                `json:"scan_id"`
	CreatedAt   time.Time             `json:"created_at"`
	IsActive    bool                  `json:"is_active"`
}
