package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/moderndash/dashboard/internal/core/ports"
)

// SnapshotStore persists session snapshots in Redis, one string key per session.
type SnapshotStore struct {
	client *redis.Client
}

// NewSnapshotStore creates a SnapshotStore wrapping the given Redis client.
func NewSnapshotStore(client *redis.Client) *SnapshotStore {
	return &SnapshotStore{client: client}
}

// Load returns ports.ErrSnapshotNotFound when the key is absent or expired.
func (s *SnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot load: %w", err)
	}
	return data, nil
}

// Save writes data under key. A ttl <= 0 keeps the key until deleted.
func (s *SnapshotStore) Save(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("snapshot save: %w", err)
	}
	return nil
}

// Delete removes key, returning ports.ErrSnapshotNotFound when nothing was removed.
func (s *SnapshotStore) Delete(ctx context.Context, key string) error {
	n, err := s.client.Del(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("snapshot delete: %w", err)
	}
	if n == 0 {
		return ports.ErrSnapshotNotFound
	}
	return nil
}
