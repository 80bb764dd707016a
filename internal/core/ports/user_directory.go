package ports

import (
	"context"

	"github.com/moderndash/dashboard/internal/core/domain"
)

// UserDirectory resolves login emails to credentials.
type UserDirectory interface {
	// FindByEmail returns domain.ErrUserNotFound when no entry matches email exactly.
	FindByEmail(ctx context.Context, email string) (*domain.Credential, error)
}
