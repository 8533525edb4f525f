package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "todos.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteCRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Ping(ctx))

	todos, err := s.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, todos)
	assert.Empty(t, todos)

	milk, err := s.Create(ctx, "Milk")
	require.NoError(t, err)
	bread, err := s.Create(ctx, "Bread")
	require.NoError(t, err)
	assert.Greater(t, bread.ID, milk.ID)

	renamed, err := s.Rename(ctx, milk.ID, "Oat milk")
	require.NoError(t, err)
	assert.Equal(t, Todo{ID: milk.ID, Name: "Oat milk"}, renamed)

	got, err := s.Get(ctx, milk.ID)
	require.NoError(t, err)
	assert.Equal(t, "Oat milk", got.Name)

	require.NoError(t, s.Delete(ctx, bread.ID))

	todos, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Todo{{ID: milk.ID, Name: "Oat milk"}}, todos)
}

func TestSQLiteErrors(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	milk, err := s.Create(ctx, "Milk")
	require.NoError(t, err)
	_, err = s.Create(ctx, "Eggs")
	require.NoError(t, err)

	_, err = s.Create(ctx, "Milk")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = s.Rename(ctx, milk.ID, "Eggs")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = s.Create(ctx, "  ")
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = s.Rename(ctx, 999, "x")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, 999), ErrNotFound)

	_, err = s.Get(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteIDsAreNotReused(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a, err := s.Create(ctx, "a")
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, a.ID))

	b, err := s.Create(ctx, "b")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}
