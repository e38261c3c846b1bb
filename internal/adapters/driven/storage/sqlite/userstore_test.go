package sqlite

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queryspan-labs/queryspan-cli/internal/core/domain"
)

func setupStore(t *testing.T) *UserStore {
	t.Helper()
	store, err := NewUserStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Connect(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestUserStore_CreateAndGet(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, domain.CreateUser{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Address: "12 St James Square",
		Phone:   "555-0100",
	})
	require.NoError(t, err)

	// IDs are UUIDs.
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	user, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", user.Name)
	assert.Equal(t, "12 St James Square", user.Address)
}

func TestUserStore_GetByID_NotFound(t *testing.T) {
	store := setupStore(t)

	_, err := store.GetByID(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserStore_GetAll(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		_, err := store.Create(ctx, domain.CreateUser{Name: name, Email: name + "@example.com"})
		require.NoError(t, err)
	}

	users, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestUserStore_Update_Partial(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, domain.CreateUser{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	phone := "555-0199"
	require.NoError(t, store.Update(ctx, id, domain.UserUpdate{Phone: &phone}))

	user, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, "555-0199", user.Phone)
}

func TestUserStore_Update_NotFound(t *testing.T) {
	store := setupStore(t)

	name := "X"
	err := store.Update(context.Background(), uuid.NewString(), domain.UserUpdate{Name: &name})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserStore_Delete(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, domain.CreateUser{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, id))
	assert.ErrorIs(t, store.Delete(ctx, id), domain.ErrNotFound)
}

func TestUserStore_MigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()

	store1, err := NewUserStore(dir)
	require.NoError(t, err)
	require.NoError(t, store1.Connect(context.Background()))

	id, err := store1.Create(context.Background(), domain.CreateUser{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	require.NoError(t, store1.Close())

	// Reopening reruns Connect; data must survive.
	store2, err := NewUserStore(dir)
	require.NoError(t, err)
	require.NoError(t, store2.Connect(context.Background()))
	defer store2.Close()

	user, err := store2.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
}
