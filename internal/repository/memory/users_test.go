package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-dashboard/internal/domain"
	"github.com/spec-kit/issue-dashboard/internal/repository"
)

func TestUserStoreDuplicateUsername(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewUserStore()

	first := &domain.User{Username: "admin", PasswordHash: "h", Name: "Admin", Role: domain.RoleManager}
	require.NoError(t, store.Create(ctx, first))
	require.Equal(t, "1", first.ID)

	dup := &domain.User{Username: "admin", PasswordHash: "h2", Name: "Other", Role: domain.RoleWorker}
	require.ErrorIs(t, store.Create(ctx, dup), repository.ErrDuplicate)

	users, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestUserStoreReturnsCopies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewUserStore()

	user := &domain.User{Username: "mike", PasswordHash: "h", Name: "Mike Johnson", Role: domain.RoleWorker}
	require.NoError(t, store.Create(ctx, user))

	got, err := store.GetByUsername(ctx, "mike")
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := store.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "Mike Johnson", again.Name, "callers must not alias stored records")
}

func TestUserStoreNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewUserStore()

	_, err := store.GetByID(ctx, "1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = store.GetByUsername(ctx, "nobody")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
