package service

import (
	"context"
	"strings"

	"wordofday/internal/domain"
	"wordofday/internal/repository"

	emailaddress "github.com/mcnijman/go-emailaddress"
	"go.uber.org/zap"
)

// UserService handles subscriber registration
type UserService struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Register subscribes a new user. It returns a validation error for a missing
// or malformed field and domain.ErrDuplicateEmail for a known address.
func (s *UserService) Register(ctx context.Context, name, email string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || email == "" {
		return nil, domain.NewValidationError("Missing name or email")
	}
	if _, err := emailaddress.Parse(email); err != nil {
		return nil, domain.NewValidationError("Invalid email address")
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	// The unique index still catches a concurrent registration of the same address.
	user, err := s.userRepo.CreateUser(ctx, name, email)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.Int64("user_id", user.ID))
	return user, nil
}

// Count returns the number of registered users
func (s *UserService) Count(ctx context.Context) (int, error) {
	return s.userRepo.CountUsers(ctx)
}
