// Package sqlite provides a SQLite-backed implementation of the
// UserStore port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// requiring no CGO. The schema is managed through versioned migrations
// embedded in the migrations/ directory, and the database runs in WAL
// mode for concurrent access.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/queryspan-labs/queryspan-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/queryspan-labs/queryspan-cli/internal/core/domain"
	"github.com/queryspan-labs/queryspan-cli/internal/core/ports/driven"
)

// Ensure UserStore implements the interface.
var _ driven.UserStore = (*UserStore)(nil)

// UserStore persists users in a SQLite database.
type UserStore struct {
	db   *sql.DB
	path string
}

// NewUserStore creates a store at the specified data directory.
// If dataDir is empty, defaults to ~/.queryspan/data/users.db.
func NewUserStore(dataDir string) (*UserStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".queryspan", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "users.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &UserStore{db: db, path: dbPath}, nil
}

// Connect runs pending schema migrations.
func (s *UserStore) Connect(_ context.Context) error {
	if err := s.migrate(migrations.FS); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *UserStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *UserStore) Path() string {
	return s.path
}

// migrate applies all pending up-migrations in version order.
func (s *UserStore) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// GetAll returns every stored user ordered by creation time.
func (s *UserStore) GetAll(ctx context.Context) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, address, phone FROM users ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Address, &u.Phone); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

// GetByID returns the user with the given ID.
func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, address, phone FROM users WHERE id = ?", id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Address, &u.Phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user %s: %w", id, err)
	}
	return &u, nil
}

// Create stores a new user with a UUID primary key.
func (s *UserStore) Create(ctx context.Context, user domain.CreateUser) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, name, email, address, phone) VALUES (?, ?, ?, ?, ?)",
		id, user.Name, user.Email, user.Address, user.Phone)
	if err != nil {
		return "", fmt.Errorf("inserting user: %w", err)
	}
	return id, nil
}

// Update applies a partial update to the user with the given ID.
func (s *UserStore) Update(ctx context.Context, id string, update domain.UserUpdate) error {
	var sets []string
	var args []any

	if update.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *update.Name)
	}
	if update.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *update.Email)
	}
	if update.Address != nil {
		sets = append(sets, "address = ?")
		args = append(args, *update.Address)
	}
	if update.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, *update.Phone)
	}
	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	query := "UPDATE users SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating user %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the user with the given ID.
func (s *UserStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting user %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
