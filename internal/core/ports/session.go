package ports

import (
	"context"
	"errors"
	"time"

	"github.com/moderndash/dashboard/internal/core/domain"
)

// ErrSnapshotNotFound is returned by a SnapshotStore when no snapshot exists for a key.
var ErrSnapshotNotFound = errors.New("session snapshot not found")

// SnapshotStore persists serialized identity snapshots, one per session key.
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Session is the read side of a session as seen by guards and handlers.
type Session interface {
	ID() string
	Current() (domain.Identity, bool)
	// Loading is true during rehydration and while an authentication attempt is in flight.
	Loading() bool
	HasRole(required ...domain.Role) bool
}
