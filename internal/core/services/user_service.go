package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/p2p_ledger/internal/apperrors"
	"github.com/SscSPs/p2p_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/p2p_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/p2p_ledger/internal/core/ports/services"
	"github.com/SscSPs/p2p_ledger/internal/dto"
	"github.com/SscSPs/p2p_ledger/internal/utils"
	"github.com/google/uuid"
)

// userService handles registration, login and profile changes.
type userService struct {
	BaseService
	userRepo  portsrepo.UserRepositoryFacade
	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
	now       func() time.Time
}

// UserServiceOption is a functional option for configuring the user service
type UserServiceOption func(*userService)

// WithJWTConfig sets how login tokens are signed.
func WithJWTConfig(secret string, expiry time.Duration, issuer string) UserServiceOption {
	return func(s *userService) {
		s.jwtSecret = secret
		s.jwtExpiry = expiry
		s.jwtIssuer = issuer
	}
}

// WithUserClock sets the time source for created_at, last_login and token expiry.
func WithUserClock(now func() time.Time) UserServiceOption {
	return func(s *userService) {
		s.now = now
	}
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade, options ...UserServiceOption) portssvc.UserSvcFacade {
	svc := &userService{
		userRepo:  userRepo,
		jwtExpiry: time.Hour,
		jwtIssuer: "p2p-ledger",
		now:       func() time.Time { return time.Now().UTC() },
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	existing, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check username availability", slog.String("username", req.Username))
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username %q is taken", apperrors.ErrDuplicate, req.Username)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(domain.NewUserParams{
		UserID:            uuid.NewString(),
		Username:          req.Username,
		Email:             req.Email,
		Phone:             req.Phone,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		PasswordHash:      hash,
		PreferredCurrency: req.PreferredCurrency,
		CreatedAt:         s.now(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save user", slog.String("username", user.Username))
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID), slog.String("preferred_currency", user.PreferredCurrency.String()))
	return &user, nil
}

func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, *domain.AccessToken, error) {
	invalid := fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)

	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, invalid
		}
		s.LogError(ctx, err, "Failed to load user for login", slog.String("username", username))
		return nil, nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogDebug(ctx, "Password mismatch", slog.String("user_id", user.UserID))
		return nil, nil, invalid
	}

	now := s.now()
	signed, expiresAt, err := utils.GenerateJWT(user.UserID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.String("user_id", user.UserID))
		return nil, nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.UserID, now); err != nil {
		// login still succeeds
		s.LogError(ctx, err, "Failed to record last login", slog.String("user_id", user.UserID))
	} else {
		user.LastLogin = &now
	}

	return user, &domain.AccessToken{Token: signed, ExpiresAt: expiresAt}, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

func (s *userService) UpdatePreferredCurrency(ctx context.Context, userID string, currency string) (*domain.User, error) {
	code, err := domain.ParseCurrencyCode(currency)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	if user.PreferredCurrency == code {
		return user, nil
	}

	user.PreferredCurrency = code
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update preferred currency", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	s.LogInfo(ctx, "Preferred currency updated", slog.String("user_id", userID), slog.String("currency", code.String()))
	return user, nil
}

// DeleteUser removes the user and their account. Ledger rows stay for the counterparties.
func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete user", slog.String("user_id", userID))
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID))
	return nil
}
