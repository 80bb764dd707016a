package service

import (
	"fmt"

	"github.com/moderndash/dashboard/internal/core/domain"
	"github.com/moderndash/dashboard/internal/core/ports"
)

const (
	// LoginPath is where unauthenticated requests for protected views are sent.
	LoginPath = "/login"
	// DashboardPath is where role-refused requests for gated views are sent.
	DashboardPath = "/dashboard"
)

// GuardDecision tells a protected view what to do.
type GuardDecision struct {
	State domain.GuardState
	// Redirect is non-empty when the view must redirect and render nothing.
	Redirect string
	// Allow is true when protected content may be rendered.
	Allow bool
}

// RouteGuard is the request-scoped guard state machine. It starts pending.
type RouteGuard struct {
	state domain.GuardState
}

// NewRouteGuard returns a guard in the pending state.
func NewRouteGuard() *RouteGuard {
	return &RouteGuard{state: domain.GuardPending}
}

// State returns the current guard state.
func (g *RouteGuard) State() domain.GuardState { return g.state }

// Transition moves the guard to next, rejecting moves the state machine forbids.
func (g *RouteGuard) Transition(next domain.GuardState) error {
	if !g.state.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, g.state, next)
	}
	g.state = next
	return nil
}

// Observe derives the guard state from the session. While the session is
// loading the guard stays where it is.
func (g *RouteGuard) Observe(session ports.Session) domain.GuardState {
	next := domain.GuardUnauthenticated
	switch {
	case session == nil:
	case session.Loading():
		next = domain.GuardPending
	default:
		if _, ok := session.Current(); ok {
			next = domain.GuardAuthenticated
		}
	}
	if g.state.CanTransitionTo(next) {
		g.state = next
	}
	return g.state
}

// Decide maps the current state to a view decision.
func (g *RouteGuard) Decide() GuardDecision {
	switch g.state {
	case domain.GuardAuthenticated:
		return GuardDecision{State: g.state, Allow: true}
	case domain.GuardUnauthenticated:
		return GuardDecision{State: g.state, Redirect: LoginPath}
	default:
		return GuardDecision{State: g.state}
	}
}
