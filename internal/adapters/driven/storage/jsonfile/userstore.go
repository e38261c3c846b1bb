// Package jsonfile provides a flat-file implementation of the UserStore
// port. User records are kept as a single JSON array on disk, the way
// small deployments expect to hand-edit them. A filesystem watcher
// invalidates the in-memory cache when the file changes underneath us.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/queryspan-labs/queryspan-cli/internal/core/domain"
	"github.com/queryspan-labs/queryspan-cli/internal/core/ports/driven"
	"github.com/queryspan-labs/queryspan-cli/internal/logger"
)

// Ensure UserStore implements the interface.
var _ driven.UserStore = (*UserStore)(nil)

// UserStore persists users in a single JSON file.
type UserStore struct {
	mu       sync.Mutex
	filePath string
	watcher  *fsnotify.Watcher

	// cache holds the decoded file contents; stale forces a reload on
	// the next read after an external modification.
	cache []domain.User
	stale bool
}

// NewUserStore creates a store backed by the JSON file at filePath.
// The file is created on Connect if it does not exist.
func NewUserStore(filePath string) *UserStore {
	return &UserStore{filePath: filePath, stale: true}
}

// Connect ensures the file exists and starts watching it for external
// edits.
func (s *UserStore) Connect(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.filePath); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(s.filePath), 0700); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
		if err := os.WriteFile(s.filePath, []byte("[]"), 0600); err != nil {
			return fmt.Errorf("initialising user file: %w", err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		// The store still works without the watcher, reads just always
		// hit the disk.
		logger.Warn("User file watcher unavailable: %v", err)
		return nil
	}
	if err := watcher.Add(s.filePath); err != nil {
		logger.Warn("Cannot watch user file %s: %v", s.filePath, err)
		watcher.Close()
		return nil
	}
	s.watcher = watcher

	go s.watch(watcher)

	logger.Debug("JSON user store ready at %s", s.filePath)
	return nil
}

// watch marks the cache stale whenever the file changes on disk.
// Our own writes also trigger events; the extra reload is harmless.
func (s *UserStore) watch(watcher *fsnotify.Watcher) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) {
				s.mu.Lock()
				s.stale = true
				s.mu.Unlock()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("User file watcher error: %v", err)
		}
	}
}

// readUsers returns the current user list, reloading from disk if the
// cache is stale. Caller must hold the lock.
func (s *UserStore) readUsers() ([]domain.User, error) {
	if !s.stale && s.cache != nil {
		return s.cache, nil
	}

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return nil, fmt.Errorf("reading user file: %w", err)
	}

	var users []domain.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("decoding user file: %w", err)
	}

	s.cache = users
	s.stale = false
	return users, nil
}

// writeUsers persists the user list and refreshes the cache.
// Caller must hold the lock.
func (s *UserStore) writeUsers(users []domain.User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding user file: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("writing user file: %w", err)
	}
	s.cache = users
	s.stale = false
	return nil
}

// GetAll returns every stored user.
func (s *UserStore) GetAll(_ context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.readUsers()
	if err != nil {
		return nil, err
	}
	result := make([]domain.User, len(users))
	copy(result, users)
	return result, nil
}

// GetByID returns the user with the given ID. IDs are compared as
// strings regardless of how they were stored.
func (s *UserStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.readUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			user := users[i]
			return &user, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Create stores a new user, allocating the next integer ID above the
// current maximum.
func (s *UserStore) Create(_ context.Context, user domain.CreateUser) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.readUsers()
	if err != nil {
		return "", err
	}

	maxID := 0
	for i := range users {
		if n, err := strconv.Atoi(users[i].ID); err == nil && n > maxID {
			maxID = n
		}
	}
	id := strconv.Itoa(maxID + 1)

	updated := append(append([]domain.User(nil), users...), domain.User{
		ID:      id,
		Name:    user.Name,
		Email:   user.Email,
		Address: user.Address,
		Phone:   user.Phone,
	})
	if err := s.writeUsers(updated); err != nil {
		return "", err
	}
	return id, nil
}

// Update applies a partial update to the user with the given ID.
func (s *UserStore) Update(_ context.Context, id string, update domain.UserUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.readUsers()
	if err != nil {
		return err
	}

	updated := make([]domain.User, len(users))
	copy(updated, users)
	for i := range updated {
		if updated[i].ID == id {
			update.Apply(&updated[i])
			return s.writeUsers(updated)
		}
	}
	return domain.ErrNotFound
}

// Delete removes the user with the given ID.
func (s *UserStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.readUsers()
	if err != nil {
		return err
	}

	remaining := make([]domain.User, 0, len(users))
	for i := range users {
		if users[i].ID != id {
			remaining = append(remaining, users[i])
		}
	}
	if len(remaining) == len(users) {
		return domain.ErrNotFound
	}
	return s.writeUsers(remaining)
}

// Close stops the file watcher.
func (s *UserStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watcher != nil {
		err := s.watcher.Close()
		s.watcher = nil
		return err
	}
	return nil
}

// Path returns the user file path.
func (s *UserStore) Path() string {
	return s.filePath
}
