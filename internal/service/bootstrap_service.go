package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/codegrader/codegrader-api/internal/models"
	"github.com/codegrader/codegrader-api/internal/repository"
)

// BootstrapService prepares required records before the server starts
// accepting connections.
type BootstrapService interface {
	EnsureAdmin(ctx context.Context) error
}

type bootstrapService struct {
	users    repository.UserRepository
	email    string
	password string
	logger   zerolog.Logger
}

// NewBootstrapService constructs the bootstrap step with the configured admin
// credentials.
func NewBootstrapService(users repository.UserRepository, email, password string, logger zerolog.Logger) BootstrapService {
	return &bootstrapService{
		users:    users,
		email:    email,
		password: password,
		logger:   logger.With().Str("component", "bootstrap_service").Logger(),
	}
}

// EnsureAdmin creates the default admin account when missing. The step is
// idempotent and safe to run on every startup.
func (s *bootstrapService) EnsureAdmin(ctx context.Context) error {
	_, err := s.users.GetByEmail(ctx, s.email)
	if err == nil {
		s.logger.Debug().Str("email", s.email).Msg("admin user already exists")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup admin user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		Email:    s.email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}

	if err := s.users.Create(ctx, &admin); err != nil {
		// A concurrent replica may have seeded the account first.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil
		}
		return fmt.Errorf("create admin user: %w", err)
	}

	s.logger.Info().Str("email", s.email).Msg("created default admin user")
	return nil
}
