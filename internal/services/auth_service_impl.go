package services

import (
	"fmt"

	"github.com/aoja-labs/jobscan-api/internal/auth"
	"github.com/aoja-labs/jobscan-api/internal/models"
	"github.com/aoja-labs/jobscan-api/internal/repository"
	"github.com/aoja-labs/jobscan-api/pkg/config"
)

// authServiceImpl implements AuthService
type authServiceImpl struct {
	repos      *repository.Repositories
	jwtService *auth.JWTService
	cfg        *config.Config
}

// newAuthService creates a new auth service implementation
func newAuthService(repos *repository.Repositories, cfg *config.Config) AuthService {
	return &authServiceImpl{
		repos:      repos,
		jwtService: auth.NewJWTService(cfg.JWTSecret),
		cfg:        cfg,
	}
}

// Login authenticates a user and returns a token pair
func (s *authServiceImpl) Login(email, password string) (*repository.LoginResponse, error) {
	user, err := s.repos.User.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, fmt.Errorf("invalid credentials")
	}

	return s.tokenResponse(user)
}

// Register creates a new user account with the initial credit grant
func (s *authServiceImpl) Register(req *repository.RegisterRequest) (*models.User, error) {
	existingUser, err := s.repos.User.GetByEmail(req.Email)
	if err == nil && existingUser != nil {
		return nil, fmt.Errorf("user with email %s already exists", req.Email)
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = string(models.RoleUser)
	}
	if role != string(models.RoleUser) && role != string(models.RoleAdmin) {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	// Every new account starts with a free credit allowance
	user := &models.User{
		Email:            req.Email,
		PasswordHash:     hashedPassword,
		Role:             role,
		CreditsRemaining: s.cfg.InitialCredits,
	}

	if err := s.repos.User.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// ValidateToken validates a JWT token and returns the user
func (s *authServiceImpl) ValidateToken(token string) (*models.User, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	// Get user from database to ensure they still exist
	user, err := s.repos.User.GetByID(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// RefreshToken generates a new token pair from a refresh token
func (s *authServiceImpl) RefreshToken(refreshToken string) (*repository.LoginResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	user, err := s.repos.User.GetByID(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	return s.tokenResponse(user)
}

func (s *authServiceImpl) tokenResponse(user *models.User) (*repository.LoginResponse, error) {
	claims := auth.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}

	token, expiresAt, err := s.jwtService.GenerateToken(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	// Refresh tokens are stateless; rotation happens on use
	refreshToken, _, err := s.jwtService.GenerateRefreshToken(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &repository.LoginResponse{
		Token:        token,
		RefreshToken: refreshToken,
		User: models.User{
			ID:               user.ID,
			Email:            user.Email,
			Role:             user.Role,
			CreditsRemaining: user.CreditsRemaining,
			CreatedAt:        user.CreatedAt,
			UpdatedAt:        user.UpdatedAt,
		},
		ExpiresAt: expiresAt,
	}, nil
}
