package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/moderndash/dashboard/internal/core/ports"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSnapshotStore_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	_, client := newTestRedis(t)
	store := NewSnapshotStore(client)

	_, err := store.Load(ctx, "moderndash_user:sid")
	require.ErrorIs(t, err, ports.ErrSnapshotNotFound)

	require.NoError(t, store.Save(ctx, "moderndash_user:sid", []byte(`{"id":"1"}`), time.Hour))

	data, err := store.Load(ctx, "moderndash_user:sid")
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"1"}`, string(data))

	require.NoError(t, store.Delete(ctx, "moderndash_user:sid"))
	require.ErrorIs(t, store.Delete(ctx, "moderndash_user:sid"), ports.ErrSnapshotNotFound)
}

func TestSnapshotStore_TTL(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	store := NewSnapshotStore(client)

	require.NoError(t, store.Save(ctx, "k", []byte("v"), time.Minute))
	require.Equal(t, time.Minute, mr.TTL("k"))

	mr.FastForward(2 * time.Minute)
	_, err := store.Load(ctx, "k")
	require.ErrorIs(t, err, ports.ErrSnapshotNotFound)
}

func TestSnapshotStore_Unavailable(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	store := NewSnapshotStore(client)
	mr.Close()

	_, err = store.Load(ctx, "k")
	require.Error(t, err)
	require.NotErrorIs(t, err, ports.ErrSnapshotNotFound)
}

func TestConnect(t *testing.T) {
	mr, _ := newTestRedis(t)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	require.NoError(t, client.Close())
}

func TestConnect_Password(t *testing.T) {
	mr, _ := newTestRedis(t)
	mr.RequireAuth("s3cret")

	_, err := Connect(context.Background(), Config{Addr: mr.Addr(), Password: "wrong"})
	require.Error(t, err)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr(), Password: "s3cret"})
	require.NoError(t, err)
	require.NoError(t, client.Close())
}
