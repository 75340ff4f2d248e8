package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/George-lab-star/ToDoListMonolith/internal/repository"
)

func newTestStore(t *testing.T, ttl time.Duration) (repository.RefreshTokenRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRefreshTokenRepository(client, ttl), mr
}

func TestStoreAndGet(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, 1, "token-a"))

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "token-a", got)
}

func TestStore_LastWriteWins(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, 1, "token-a"))
	require.NoError(t, store.Store(ctx, 1, "token-b"))

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "token-b", got)
}

func TestGet_AbsentIsNotAnError(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	got, err := store.Get(context.Background(), 99)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestDelete_AbsentIsNoOp(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Delete(ctx, 1))

	require.NoError(t, store.Store(ctx, 1, "token-a"))
	require.NoError(t, store.Delete(ctx, 1))
	require.NoError(t, store.Delete(ctx, 1))

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestStore_EntryExpires(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, 1, "token-a"))

	mr.FastForward(time.Minute + time.Second)

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestStore_RewriteResetsTTL(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, 1, "token-a"))
	mr.FastForward(45 * time.Second)

	require.NoError(t, store.Store(ctx, 1, "token-b"))
	mr.FastForward(45 * time.Second)

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "token-b", got)
}

func TestStores_AreIndependentPerUser(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, 1, "token-a"))
	require.NoError(t, store.Store(ctx, 2, "token-b"))
	require.NoError(t, store.Delete(ctx, 1))

	got, err := store.Get(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, "token-b", got)
}
