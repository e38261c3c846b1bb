package driven

import (
	"context"

	"github.com/queryspan-labs/queryspan-cli/internal/core/domain"
)

// UserStore persists user records. Implementations exist for a flat
// JSON file, SQLite, and in-memory (tests).
type UserStore interface {
	// Connect prepares the backing storage (creates the file or runs
	// migrations). Called once at startup.
	Connect(ctx context.Context) error

	// GetAll returns every stored user.
	GetAll(ctx context.Context) ([]domain.User, error)

	// GetByID returns the user with the given ID.
	// Returns domain.ErrNotFound if no such user exists.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// Create stores a new user and returns its assigned ID.
	Create(ctx context.Context, user domain.CreateUser) (string, error)

	// Update applies a partial update to the user with the given ID.
	// Returns domain.ErrNotFound if no such user exists.
	Update(ctx context.Context, id string, update domain.UserUpdate) error

	// Delete removes the user with the given ID.
	// Returns domain.ErrNotFound if no such user exists.
	Delete(ctx context.Context, id string) error

	// Close releases resources.
	Close() error
}
