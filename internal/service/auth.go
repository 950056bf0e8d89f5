package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/clubreviewapp/clubreview-server/internal/auth"
	"github.com/clubreviewapp/clubreview-server/internal/domain"
	"github.com/clubreviewapp/clubreview-server/internal/id"
	"github.com/clubreviewapp/clubreview-server/internal/store"
	"github.com/clubreviewapp/clubreview-server/internal/validation"
)

// AuthService handles signup, login, and token verification.
type AuthService struct {
	store        store.Store
	tokenService *auth.TokenService
	validator    *validation.Validator
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	store store.Store,
	tokenService *auth.TokenService,
	validator *validation.Validator,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		store:        store,
		tokenService: tokenService,
		validator:    validator,
		logger:       logger,
	}
}

// SignupRequest contains the registration data for a new account.
type SignupRequest struct {
	Handle   string `json:"user" validate:"required,min=2,max=64"`
	Name     string `json:"name" validate:"required,max=255"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
	Year     *int   `json:"year" validate:"omitempty,gte=1,lte=8"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Handle   string `json:"user" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse contains the access token and the public profile.
type AuthResponse struct {
	Token string   `json:"token"`
	User  UserJSON `json:"profile"`
}

// Signup registers a new account and returns an access token for it.
// Handles are unique by exact match on write; a case-variant of an
// existing handle is a distinct account.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := domain.NewUser(userID, req.Handle, req.Name, passwordHash)
	user.Year = req.Year
	user.Email = req.Email

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	s.logger.Info("user registered", "handle", user.Handle)

	return &AuthResponse{
		Token: token,
		User:  userToJSON(user),
	}, nil
}

// Login verifies credentials and returns a fresh access token. The
// handle is matched case-insensitively; the password check is
// constant-time. Bad handle and bad password are indistinguishable to
// the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByHandle(ctx, req.Handle)
	if err != nil {
		return nil, store.ErrUnauthorized.WithMessage("invalid credentials")
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil || !ok {
		return nil, store.ErrUnauthorized.WithMessage("invalid credentials")
	}

	token, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	s.logger.Info("user logged in", "handle", user.Handle)

	return &AuthResponse{
		Token: token,
		User:  userToJSON(user),
	}, nil
}

// VerifyAccessToken validates a bearer token and returns its claims.
func (s *AuthService) VerifyAccessToken(tokenString string) (*auth.AccessClaims, error) {
	claims, err := s.tokenService.VerifyAccessToken(tokenString)
	if err != nil {
		return nil, store.ErrUnauthorized.WithMessage("invalid or expired token").WithCause(err)
	}
	return claims, nil
}
