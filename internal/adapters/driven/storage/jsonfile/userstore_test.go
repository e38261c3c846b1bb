package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queryspan-labs/queryspan-cli/internal/core/domain"
)

func setupStore(t *testing.T) *UserStore {
	t.Helper()
	store := NewUserStore(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, store.Connect(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestUserStore_Connect_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "users.json")
	store := NewUserStore(path)

	require.NoError(t, store.Connect(context.Background()))
	defer store.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestUserStore_Connect_ExistingFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	existing := `[{"id":"7","name":"Ada","email":"ada@example.com","address":"","phone":""}]`
	require.NoError(t, os.WriteFile(path, []byte(existing), 0600))

	store := NewUserStore(path)
	require.NoError(t, store.Connect(context.Background()))
	defer store.Close()

	users, err := store.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "7", users[0].ID)
}

func TestUserStore_Create_MaxIDAllocation(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	id1, err := store.Create(ctx, domain.CreateUser{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "1", id1)

	id2, err := store.Create(ctx, domain.CreateUser{Name: "B", Email: "b@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "2", id2)

	// Deleting the highest ID frees it for reuse; allocation is
	// max-plus-one, not a persistent counter.
	require.NoError(t, store.Delete(ctx, id2))
	id3, err := store.Create(ctx, domain.CreateUser{Name: "C", Email: "c@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "2", id3)
}

func TestUserStore_CreatePersistsToDisk(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, domain.CreateUser{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	var users []domain.User
	require.NoError(t, json.Unmarshal(data, &users))
	require.Len(t, users, 1)
	assert.Equal(t, "Ada", users[0].Name)
}

func TestUserStore_GetByID_NotFound(t *testing.T) {
	store := setupStore(t)

	_, err := store.GetByID(context.Background(), "42")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserStore_Update(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, domain.CreateUser{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	email := "lovelace@example.com"
	require.NoError(t, store.Update(ctx, id, domain.UserUpdate{Email: &email}))

	user, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, "lovelace@example.com", user.Email)
}

func TestUserStore_Update_NotFound(t *testing.T) {
	store := setupStore(t)

	name := "X"
	err := store.Update(context.Background(), "42", domain.UserUpdate{Name: &name})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserStore_Delete_NotFound(t *testing.T) {
	store := setupStore(t)

	err := store.Delete(context.Background(), "42")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserStore_ExternalEditPickedUp(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, domain.CreateUser{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	// Edit the file behind the store's back.
	external := `[{"id":"1","name":"Ada","email":"ada@example.com","address":"","phone":""},` +
		`{"id":"2","name":"Grace","email":"grace@example.com","address":"","phone":""}]`
	require.NoError(t, os.WriteFile(store.Path(), []byte(external), 0600))

	// The watcher delivers the event asynchronously.
	require.Eventually(t, func() bool {
		users, err := store.GetAll(ctx)
		return err == nil && len(users) == 2
	}, 2*time.Second, 10*time.Millisecond)
}
