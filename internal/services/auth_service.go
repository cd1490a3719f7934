package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gapfarm/portal/api/internal/auth"
	"github.com/gapfarm/portal/api/internal/config"
	"github.com/gapfarm/portal/api/internal/logger"
	"github.com/gapfarm/portal/api/internal/models"
	"github.com/gapfarm/portal/api/internal/repository"
	"github.com/gapfarm/portal/api/internal/validation"
)

// ErrInvalidCredentials is returned for a wrong email or password. The two
// cases are deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrPasswordPolicy wraps the strict password rule's message when a new
// password is rejected.
var ErrPasswordPolicy = errors.New("password does not meet the policy")

// AuthService defines the interface for login and password management.
type AuthService interface {
	// Login verifies the credentials and returns the account together with
	// a signed session token.
	Login(ctx context.Context, email, password string) (*models.User, string, error)

	// ChangePassword applies the strict password rule and replaces the
	// stored hash. Returns the rule's message via error when rejected.
	ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
}

type authService struct {
	users repository.UserRepository
	cfg   config.AuthConfig
	log   *logger.Logger
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(users repository.UserRepository, cfg config.AuthConfig, log *logger.Logger) AuthService {
	return &authService{users: users, cfg: cfg, log: log}
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to look up account", err, map[string]interface{}{"email": email})
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		s.log.Warn("Password check failed", map[string]interface{}{"email": email})
		return nil, "", ErrInvalidCredentials
	}

	claims := auth.NewClaims(user.ID, user.FullName(), user.Role, s.cfg.TokenTTL)
	token, err := auth.Sign(claims, s.cfg.Secret)
	if err != nil {
		s.log.Error("Failed to sign session token", err, nil)
		return nil, "", err
	}

	s.log.Info("Account signed in", map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	})
	return user, token, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidCredentials
	}

	if err := auth.CheckPassword(user.PasswordHash, currentPassword); err != nil {
		return ErrInvalidCredentials
	}

	if msg := validation.CheckStrictPassword(newPassword, currentPassword); msg != "" {
		return fmt.Errorf("%w: %s", ErrPasswordPolicy, msg)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}
