package service

import (
	"errors"
	"testing"

	"github.com/moderndash/dashboard/internal/core/domain"
)

type stubSession struct {
	identity *domain.Identity
	loading  bool
}

func (s *stubSession) ID() string    { return "stub" }
func (s *stubSession) Loading() bool { return s.loading }
func (s *stubSession) Current() (domain.Identity, bool) {
	if s.identity == nil {
		return domain.Identity{}, false
	}
	return *s.identity, true
}
func (s *stubSession) HasRole(required ...domain.Role) bool { return HasRole(s.identity, required...) }

func TestRouteGuard_PendingWhileLoading(t *testing.T) {
	g := NewRouteGuard()
	if state := g.Observe(&stubSession{loading: true}); state != domain.GuardPending {
		t.Fatalf("expected pending, got %s", state)
	}
	d := g.Decide()
	if d.Allow || d.Redirect != "" {
		t.Fatalf("pending must neither render nor redirect: %+v", d)
	}
}

func TestRouteGuard_Unauthenticated(t *testing.T) {
	g := NewRouteGuard()
	g.Observe(&stubSession{})
	d := g.Decide()
	if d.State != domain.GuardUnauthenticated || d.Redirect != LoginPath || d.Allow {
		t.Fatalf("unexpected decision: %+v", d)
	}
}

func TestRouteGuard_Authenticated(t *testing.T) {
	id := sampleIdentity()
	g := NewRouteGuard()
	g.Observe(&stubSession{identity: &id})
	d := g.Decide()
	if d.State != domain.GuardAuthenticated || !d.Allow || d.Redirect != "" {
		t.Fatalf("unexpected decision: %+v", d)
	}
}

func TestRouteGuard_LogoutTransition(t *testing.T) {
	id := sampleIdentity()
	sess := &stubSession{identity: &id}
	g := NewRouteGuard()
	g.Observe(sess)

	sess.identity = nil
	if state := g.Observe(sess); state != domain.GuardUnauthenticated {
		t.Fatalf("expected unauthenticated after logout, got %s", state)
	}

	// A login in flight does not drag a settled guard back to pending.
	sess.loading = true
	if state := g.Observe(sess); state != domain.GuardUnauthenticated {
		t.Fatalf("expected guard to stay unauthenticated, got %s", state)
	}
}

func TestRouteGuard_TransitionRejectsInvalidMoves(t *testing.T) {
	g := NewRouteGuard()
	if err := g.Transition(domain.GuardAuthenticated); err != nil {
		t.Fatalf("pending -> authenticated: %v", err)
	}
	if err := g.Transition(domain.GuardPending); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestRouteGuard_NilSession(t *testing.T) {
	g := NewRouteGuard()
	if state := g.Observe(nil); state != domain.GuardUnauthenticated {
		t.Fatalf("expected unauthenticated for nil session, got %s", state)
	}
}

func TestHasRole_NilIdentity(t *testing.T) {
	if HasRole(nil, domain.RoleUser) {
		t.Fatalf("nil identity must satisfy nothing")
	}
}
