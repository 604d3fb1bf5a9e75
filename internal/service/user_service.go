package service

import (
	"context"
	"strings"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/authz"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// UserService coordinates account reads and updates.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// UserUpdateInput describes account update payloads. Empty fields are
// left unchanged.
type UserUpdateInput struct {
	Username string
	Email    string
	Password string
}

// Get fetches an account by ID.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// Update modifies an account. Self or admin only.
func (s *UserService) Update(ctx context.Context, actor *auth.Principal, id string, input UserUpdateInput) (*domain.User, error) {
	if !authz.CanModify(actor, id) {
		return nil, apperrors.NewForbidden("you can only update your own account")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if username := strings.TrimSpace(input.Username); username != "" {
		user.Username = username
	}
	if email := strings.TrimSpace(input.Email); email != "" {
		user.Email = email
	}
	if input.Password != "" {
		if len(input.Password) < 6 {
			return nil, apperrors.NewValidationError("password must be at least 6 characters", nil)
		}
		hash, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes an account. Admin-gated at the route.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}
