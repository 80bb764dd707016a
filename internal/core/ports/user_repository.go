package ports

import (
	"context"
	"time"

	"github.com/moderndash/dashboard/internal/core/domain"
)

// UserRepository defines persistence operations for the users table.
type UserRepository interface {
	// List returns users ordered by created_at, newest first.
	List(ctx context.Context) ([]*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update applies the non-nil fields of update and stamps updated_at.
	Update(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	// TouchLastLogin sets last_login for the user with the given email, if any.
	TouchLastLogin(ctx context.Context, email string, at time.Time) error
}
