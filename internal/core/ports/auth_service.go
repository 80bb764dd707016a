package ports

import (
	"context"

	"github.com/moderndash/dashboard/internal/core/domain"
)

// LoginResult is returned by a successful Login.
type LoginResult struct {
	SessionID string
	Token     string
	Identity  domain.Identity
}

// AuthService drives login and logout for a session id.
type AuthService interface {
	// Login authenticates against sessionID, creating one when empty.
	// It returns domain.ErrInvalidCredentials when email or password do not match.
	Login(ctx context.Context, sessionID, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
}
