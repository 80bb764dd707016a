package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/moderndash/dashboard/internal/core/domain"
	"github.com/moderndash/dashboard/internal/core/ports"
)

// LoginRecorder stamps last_login in the users table for processed login events.
type LoginRecorder struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewLoginRecorder(repo ports.UserRepository, logger zerolog.Logger) *LoginRecorder {
	return &LoginRecorder{repo: repo, logger: logger}
}

// Process records event. Identities without a users row are skipped.
func (r *LoginRecorder) Process(ctx context.Context, event ports.LoginEvent) error {
	err := r.repo.TouchLastLogin(ctx, event.Email, event.At)
	if errors.Is(err, domain.ErrUserNotFound) {
		r.logger.Debug().Str("email", event.Email).Msg("no users row for login event")
		return nil
	}
	return err
}
