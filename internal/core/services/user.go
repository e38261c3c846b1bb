package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/queryspan-labs/queryspan-cli/internal/core/domain"
	"github.com/queryspan-labs/queryspan-cli/internal/core/ports/driven"
	"github.com/queryspan-labs/queryspan-cli/internal/core/ports/driving"
)

// Ensure UserService implements the interface.
var _ driving.UserService = (*UserService)(nil)

// UserService manages user records over a UserStore, validating input
// before it reaches the storage adapter.
type UserService struct {
	store driven.UserStore
}

// NewUserService creates a new user service.
func NewUserService(store driven.UserStore) *UserService {
	return &UserService{store: store}
}

// List returns all stored users.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: user ID must not be empty", domain.ErrInvalidInput)
	}
	return s.store.GetByID(ctx, id)
}

// Create validates and stores a new user.
func (s *UserService) Create(ctx context.Context, user domain.CreateUser) (string, error) {
	if strings.TrimSpace(user.Name) == "" {
		return "", fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(user.Email) == "" {
		return "", fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	id, err := s.store.Create(ctx, user)
	if err != nil {
		return "", fmt.Errorf("creating user: %w", err)
	}
	return id, nil
}

// Update applies a partial update to an existing user.
func (s *UserService) Update(ctx context.Context, id string, update domain.UserUpdate) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: user ID must not be empty", domain.ErrInvalidInput)
	}
	if update.Empty() {
		return fmt.Errorf("%w: update contains no fields", domain.ErrInvalidInput)
	}
	return s.store.Update(ctx, id, update)
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: user ID must not be empty", domain.ErrInvalidInput)
	}
	return s.store.Delete(ctx, id)
}
