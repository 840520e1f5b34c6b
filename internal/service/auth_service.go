package service

import (
	"context"
	"fmt"
	"strconv"

	"storefront/api"
	"storefront/internal/storage"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// authService implements AuthService. Passwords are bcrypt-hashed at rest.
// The issued token is the stringified user id — the mock scheme the API
// contract mandates, carrying no cryptographic meaning.
type authService struct {
	store  storage.Storage
	logger zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(store storage.Storage, logger zerolog.Logger) AuthService {
	return &authService{
		store:  store,
		logger: logger.With().Str("service", "auth").Logger(),
	}
}

// Register creates a new user. A duplicate email maps to ErrEmailTaken.
func (s *authService) Register(ctx context.Context, req *api.RegisterRequest) (*api.AuthResponse, error) {
	existing, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up email")
		return nil, fmt.Errorf("failed to register: %w", err)
	}
	if existing != nil {
		s.logger.Debug().Msg("registration with existing email")
		return nil, api.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	user, err := s.store.CreateUser(ctx, &api.InsertUser{
		Email:    req.Email,
		Password: string(hash),
		Name:     req.Name,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create user")
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user registered")

	return &api.AuthResponse{User: *user, Token: Token(user.ID)}, nil
}

// Login verifies the email and password. Unknown email and wrong password
// are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req *api.LoginRequest) (*api.AuthResponse, error) {
	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up email")
		return nil, fmt.Errorf("failed to login: %w", err)
	}
	if user == nil {
		s.logger.Debug().Msg("login with unknown email")
		return nil, api.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		s.logger.Debug().Int64("user_id", user.ID).Msg("login with wrong password")
		return nil, api.ErrInvalidCredentials
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user logged in")

	return &api.AuthResponse{User: *user, Token: Token(user.ID)}, nil
}

// Me returns the user for the resolved caller identity.
func (s *authService) Me(ctx context.Context, userID int64) (*api.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to get user")
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, api.ErrUnauthorized
	}
	return user, nil
}

// Token mints the mock bearer token for a user id.
func Token(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
