// Package memory provides in-memory implementations of driven port
// interfaces, primarily for tests.
package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/queryspan-labs/queryspan-cli/internal/core/domain"
	"github.com/queryspan-labs/queryspan-cli/internal/core/ports/driven"
)

// Ensure UserStore implements the interface.
var _ driven.UserStore = (*UserStore)(nil)

// UserStore is an in-memory implementation of driven.UserStore.
type UserStore struct {
	mu     sync.RWMutex
	users  map[string]domain.User
	order  []string
	nextID int
}

// NewUserStore creates a new in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{
		users:  make(map[string]domain.User),
		nextID: 1,
	}
}

// Connect is a no-op for the in-memory store.
func (s *UserStore) Connect(_ context.Context) error {
	return nil
}

// GetAll returns every stored user in insertion order.
func (s *UserStore) GetAll(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.User, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.users[id])
	}
	return result, nil
}

// GetByID returns the user with the given ID.
func (s *UserStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}

// Create stores a new user with a sequential ID.
func (s *UserStore) Create(_ context.Context, user domain.CreateUser) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strconv.Itoa(s.nextID)
	s.nextID++

	s.users[id] = domain.User{
		ID:      id,
		Name:    user.Name,
		Email:   user.Email,
		Address: user.Address,
		Phone:   user.Phone,
	}
	s.order = append(s.order, id)
	return id, nil
}

// Update applies a partial update to an existing user.
func (s *UserStore) Update(_ context.Context, id string, update domain.UserUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	update.Apply(&user)
	s.users[id] = user
	return nil
}

// Delete removes the user with the given ID.
func (s *UserStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.users, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Close is a no-op for the in-memory store.
func (s *UserStore) Close() error {
	return nil
}
