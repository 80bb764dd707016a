package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/moderndash/dashboard/internal/core/domain"
	"github.com/moderndash/dashboard/internal/core/ports"
)

type stubSession struct {
	id       string
	identity *domain.Identity
	loading  bool
}

func (s *stubSession) ID() string { return s.id }

func (s *stubSession) Current() (domain.Identity, bool) {
	if s.identity == nil {
		return domain.Identity{}, false
	}
	return *s.identity, true
}

func (s *stubSession) Loading() bool { return s.loading }

func (s *stubSession) HasRole(required ...domain.Role) bool {
	return s.identity != nil && s.identity.Role.Satisfies(domain.Require(required...))
}

func authenticated(role domain.Role) *stubSession {
	now := time.Now().UTC()
	return &stubSession{id: "sid", identity: &domain.Identity{
		ID: "1", Email: "x@moderndash.com", Name: "X", Role: role, CreatedAt: now, UpdatedAt: now,
	}}
}

type stubTokens struct{}

func (stubTokens) Parse(token string) (string, error) {
	if token != "good" {
		return "", errors.New("bad token")
	}
	return "sid-1", nil
}

type stubLookup struct {
	session ports.Session
	asked   string
}

func (l *stubLookup) Lookup(_ context.Context, sid string) ports.Session {
	l.asked = sid
	return l.session
}
