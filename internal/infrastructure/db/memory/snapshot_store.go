// Package memory provides in-process implementations of storage ports, used for
// local development (SESSION_STORE=memory) and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/moderndash/dashboard/internal/core/ports"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// SnapshotStore keeps session snapshots in a map with per-key expiry.
type SnapshotStore struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{entries: make(map[string]entry), now: time.Now}
}

func (s *SnapshotStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, ports.ErrSnapshotNotFound
	}
	if e.expired(s.now()) {
		delete(s.entries, key)
		return nil, ports.ErrSnapshotNotFound
	}
	out := make([]byte, len(e.data))
	copy(out, e.data)
	return out, nil
}

// Save stores data under key. A ttl <= 0 never expires.
func (s *SnapshotStore) Save(_ context.Context, key string, data []byte, ttl time.Duration) error {
	e := entry{data: append([]byte(nil), data...)}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
	return nil
}

func (s *SnapshotStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; !ok {
		return ports.ErrSnapshotNotFound
	}
	delete(s.entries, key)
	return nil
}

// Sweep removes every expired entry and returns how many it removed.
func (s *SnapshotStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired ones included.
func (s *SnapshotStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Run sweeps expired entries every interval until ctx is done.
func (s *SnapshotStore) Run(ctx context.Context, interval time.Duration, log zerolog.Logger) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				log.Debug().Int("removed", n).Msg("expired session snapshots removed")
			}
		}
	}
}
