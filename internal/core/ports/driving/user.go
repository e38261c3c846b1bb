package driving

import (
	"context"

	"github.com/queryspan-labs/queryspan-cli/internal/core/domain"
)

// UserService manages user records on behalf of external actors.
type UserService interface {
	// List returns all stored users.
	List(ctx context.Context) ([]domain.User, error)

	// Get returns a user by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.User, error)

	// Create validates and stores a new user, returning its ID.
	Create(ctx context.Context, user domain.CreateUser) (string, error)

	// Update applies a partial update. Returns domain.ErrInvalidInput
	// for an empty update and domain.ErrNotFound if the user is absent.
	Update(ctx context.Context, id string, update domain.UserUpdate) error

	// Delete removes a user. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, id string) error
}
