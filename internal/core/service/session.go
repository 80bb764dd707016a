package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/moderndash/dashboard/internal/core/domain"
	"github.com/moderndash/dashboard/internal/core/ports"
)

// Session holds at most one Identity for a session id and mirrors it to the
// snapshot store.
type Session struct {
	id      string
	store   ports.SnapshotStore
	ttl     time.Duration
	metrics ports.Metrics
	now     func() time.Time
	log     zerolog.Logger

	mu      sync.RWMutex
	current *domain.Identity
	// expiresAt mirrors the snapshot TTL of current. Zero never expires.
	expiresAt time.Time
	// loaded is set once the first rehydration finished. Later reloads
	// refresh current without raising rehydrating.
	loaded      bool
	rehydrating bool
	inFlight    bool
	// holds counts the Attach callers that have not released the session yet.
	holds int
	// generation increments on every Set/Clear so a slow rehydration cannot
	// overwrite a newer identity.
	generation uint64
}

func newSession(id string, m *SessionManager) *Session {
	return &Session{
		id:      id,
		store:   m.store,
		ttl:     m.ttl,
		metrics: m.metrics,
		now:     m.now,
		log:     m.log.With().Str("session_id", id).Logger(),
	}
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Current returns a copy of the active identity, if any.
func (s *Session) Current() (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.Identity{}, false
	}
	return *s.current, true
}

// Loading reports whether the session is rehydrating or authenticating.
// Protected content must not be rendered while it is true.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rehydrating || s.inFlight
}

// HasRole reports whether the active identity satisfies any of the required roles.
func (s *Session) HasRole(required ...domain.Role) bool {
	identity, ok := s.Current()
	if !ok {
		return false
	}
	return HasRole(&identity, required...)
}

// Set persists identity and installs it as the active identity. When persisting
// fails the session is left unchanged.
func (s *Session) Set(ctx context.Context, identity domain.Identity) error {
	identity = identity.Normalized()
	if err := identity.Validate(); err != nil {
		return err
	}

	data, err := encodeSnapshot(identity)
	if err != nil {
		return fmt.Errorf("encode session snapshot: %w", err)
	}
	if err := s.store.Save(ctx, SnapshotKey(s.id), data, s.ttl); err != nil {
		return fmt.Errorf("persist session snapshot: %w", err)
	}

	s.mu.Lock()
	s.current = &identity
	s.expiresAt = s.expiryFrom(s.now())
	s.loaded = true
	s.generation++
	s.mu.Unlock()
	return nil
}

func (s *Session) expiryFrom(now time.Time) time.Time {
	if s.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(s.ttl)
}

// Clear drops the active identity and removes the persisted snapshot.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.expiresAt = time.Time{}
	s.generation++
	s.mu.Unlock()

	if err := s.store.Delete(ctx, SnapshotKey(s.id)); err != nil && !errors.Is(err, ports.ErrSnapshotNotFound) {
		return fmt.Errorf("delete session snapshot: %w", err)
	}
	return nil
}

// rehydrate reloads the identity from the snapshot store. It is a no-op while an
// authentication attempt is in flight. Only the first load of a session reports
// Loading; a reload of a loaded session swaps the result in when it completes,
// so concurrent readers keep seeing the previous identity until then.
func (s *Session) rehydrate(ctx context.Context) {
	s.mu.Lock()
	if s.inFlight || s.id == "" {
		s.mu.Unlock()
		return
	}
	initial := !s.loaded
	if initial {
		s.rehydrating = true
	}
	gen := s.generation
	s.mu.Unlock()

	identity := s.loadSnapshot(ctx)

	s.mu.Lock()
	if s.generation == gen {
		s.current = identity
		switch now := s.now(); {
		case identity == nil:
			s.expiresAt = time.Time{}
		case s.expiresAt.IsZero() || !now.Before(s.expiresAt):
			s.expiresAt = s.expiryFrom(now)
		}
	}
	if initial {
		s.rehydrating = false
		s.loaded = true
	}
	s.mu.Unlock()
}

func (s *Session) loadSnapshot(ctx context.Context) *domain.Identity {
	key := SnapshotKey(s.id)

	data, err := s.store.Load(ctx, key)
	switch {
	case errors.Is(err, ports.ErrSnapshotNotFound):
		s.metrics.SessionRehydration("absent")
		return nil
	case err != nil:
		s.metrics.SessionRehydration("error")
		s.log.Error().Err(err).Msg("session snapshot load failed")
		return nil
	}

	identity, err := decodeSnapshot(data)
	if err != nil {
		s.metrics.SessionRehydration("discarded")
		s.log.Warn().Err(err).Msg("discarding malformed session snapshot")
		if delErr := s.store.Delete(ctx, key); delErr != nil && !errors.Is(delErr, ports.ErrSnapshotNotFound) {
			s.log.Error().Err(delErr).Msg("malformed session snapshot delete failed")
		}
		return nil
	}

	s.metrics.SessionRehydration("restored")
	return &identity
}

// beginAuth marks an authentication attempt as in flight. A second attempt on
// the same session fails with domain.ErrAuthInProgress.
func (s *Session) beginAuth() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return domain.ErrAuthInProgress
	}
	s.inFlight = true
	return nil
}

func (s *Session) endAuth() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

// retained reports whether the session must stay registered at now: it is
// authenticated and not past its expiry, or a load or login is running on it.
func (s *Session) retained(now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.inFlight || s.rehydrating || s.holds > 0 {
		return true
	}
	return s.current != nil && (s.expiresAt.IsZero() || now.Before(s.expiresAt))
}

const defaultSweepInterval = time.Minute

// SessionManager owns the sessions of the process. Authenticated and in-flight
// sessions stay registered so concurrent requests on one id share their state.
// An authenticated session is evicted once its snapshot TTL has passed.
type SessionManager struct {
	store   ports.SnapshotStore
	ttl     time.Duration
	metrics ports.Metrics
	now     func() time.Time
	log     zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionManager creates a SessionManager persisting snapshots to store with
// the given TTL. rec may be nil.
func NewSessionManager(store ports.SnapshotStore, ttl time.Duration, rec ports.Metrics, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		store:    store,
		ttl:      ttl,
		metrics:  orNop(rec),
		now:      time.Now,
		log:      log,
		sessions: make(map[string]*Session),
	}
}

// NewID returns a fresh random session id.
func (m *SessionManager) NewID() string {
	return uuid.NewString()
}

// Open returns the session for sessionID, rehydrated from the snapshot store.
// An empty id yields a detached, unauthenticated session.
func (m *SessionManager) Open(ctx context.Context, sessionID string) *Session {
	if sessionID == "" {
		return newSession("", m)
	}
	s := m.getOrCreate(sessionID, false)
	s.rehydrate(ctx)
	m.retain(s)
	return s
}

// Lookup is Open behind the read-only ports.Session view.
func (m *SessionManager) Lookup(ctx context.Context, sessionID string) ports.Session {
	return m.Open(ctx, sessionID)
}

// Attach opens sessionID and keeps it registered until release is called, so an
// authentication attempt on it is visible to concurrent requests.
func (m *SessionManager) Attach(ctx context.Context, sessionID string) (*Session, func()) {
	s := m.getOrCreate(sessionID, true)
	s.rehydrate(ctx)

	var once sync.Once
	return s, func() {
		once.Do(func() {
			s.mu.Lock()
			s.holds--
			s.mu.Unlock()
			m.retain(s)
		})
	}
}

// Close unregisters sessionID. It does not touch the persisted snapshot.
func (m *SessionManager) Close(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}

// Len returns the number of live registered sessions. Expired ones are evicted first.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked(m.now())
	return len(m.sessions)
}

// Sweep evicts the sessions whose TTL has passed and returns how many it removed.
func (m *SessionManager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweepLocked(m.now())
}

func (m *SessionManager) sweepLocked(now time.Time) int {
	evicted := 0
	for id, s := range m.sessions {
		if !s.retained(now) {
			delete(m.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Run sweeps expired sessions every interval until ctx is done.
func (m *SessionManager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				m.log.Debug().Int("evicted", n).Msg("expired sessions evicted")
			}
		}
	}
}

// getOrCreate returns the registered session for sessionID. An expired entry is
// replaced by a fresh session that loads from storage again. With hold set the
// session stays registered until the caller releases it.
func (m *SessionManager) getOrCreate(sessionID string, hold bool) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok || !s.retained(m.now()) {
		s = newSession(sessionID, m)
		m.sessions[sessionID] = s
	}
	if hold {
		s.mu.Lock()
		s.holds++
		s.mu.Unlock()
	}
	return s
}

func (m *SessionManager) retain(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.retained(m.now()) {
		m.sessions[s.id] = s
		return
	}
	if m.sessions[s.id] == s {
		delete(m.sessions, s.id)
	}
}
