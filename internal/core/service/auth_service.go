package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/moderndash/dashboard/internal/core/domain"
	"github.com/moderndash/dashboard/internal/core/ports"
)

const (
	defaultAuthTimeout = 10 * time.Second
)

// AuthOptions tunes the authenticator.
type AuthOptions struct {
	// Delay simulates the latency of a remote directory.
	Delay time.Duration
	// Timeout bounds a whole authentication attempt. Defaults to 10s.
	Timeout time.Duration
}

// AuthService authenticates credentials and installs identities into sessions.
type AuthService struct {
	directory ports.UserDirectory
	sessions  *SessionManager
	tokens    *TokenManager
	logins    ports.LoginQueue
	metrics   ports.Metrics
	delay     time.Duration
	timeout   time.Duration
	logger    zerolog.Logger
}

// NewAuthService wires an AuthService. logins may be nil to skip last-login
// recording and rec may be nil to skip measurements.
func NewAuthService(
	directory ports.UserDirectory,
	sessions *SessionManager,
	tokens *TokenManager,
	logins ports.LoginQueue,
	rec ports.Metrics,
	opts AuthOptions,
	logger zerolog.Logger,
) *AuthService {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultAuthTimeout
	}
	if opts.Delay < 0 {
		opts.Delay = 0
	}
	return &AuthService{
		directory: directory,
		sessions:  sessions,
		tokens:    tokens,
		logins:    logins,
		metrics:   orNop(rec),
		delay:     opts.Delay,
		timeout:   opts.Timeout,
		logger:    logger,
	}
}

// Authenticate verifies email and secret and, on a match, installs the identity
// into session and persists it. A non-match returns false and leaves session
// untouched. Only one attempt per session may be in flight.
func (s *AuthService) Authenticate(ctx context.Context, session *Session, email, secret string) (bool, error) {
	start := time.Now()
	result := "error"
	defer func() {
		s.metrics.AuthAttempt(result, time.Since(start))
	}()

	if err := session.beginAuth(); err != nil {
		result = "in_progress"
		return false, err
	}
	defer session.endAuth()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	identity, err := s.verify(ctx, email, secret)
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		result = "invalid"
		s.logger.Info().Str("email", email).Msg("authentication rejected")
		return false, nil
	case errors.Is(err, context.DeadlineExceeded):
		result = "timeout"
		s.logger.Warn().Str("email", email).Dur("timeout", s.timeout).Msg("authentication timed out")
		return false, domain.ErrAuthTimeout
	case err != nil:
		s.logger.Error().Err(err).Str("email", email).Msg("authentication failed")
		return false, err
	}

	if err := session.Set(ctx, *identity); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			result = "timeout"
			return false, domain.ErrAuthTimeout
		}
		s.logger.Error().Err(err).Str("email", email).Msg("session install failed")
		return false, err
	}

	result = "success"
	s.logger.Info().Str("user_id", identity.ID).Str("role", string(identity.Role)).Msg("authenticated")
	if s.logins != nil {
		s.logins.Enqueue(ports.LoginEvent{UserID: identity.ID, Email: identity.Email, At: time.Now().UTC()})
	}
	return true, nil
}

func (s *AuthService) verify(ctx context.Context, email, secret string) (*domain.Identity, error) {
	if err := wait(ctx, s.delay); err != nil {
		return nil, err
	}

	cred, err := s.directory.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(secret)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	identity := cred.Identity
	return &identity, nil
}

// Login authenticates on sessionID, creating a new session id when it is empty,
// and issues a token for it.
func (s *AuthService) Login(ctx context.Context, sessionID, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if sessionID == "" {
		sessionID = s.sessions.NewID()
	}

	session, release := s.sessions.Attach(ctx, sessionID)
	defer release()

	ok, err := s.Authenticate(ctx, session, email, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(sessionID)
	if err != nil {
		return nil, err
	}
	identity, _ := session.Current()
	return &ports.LoginResult{SessionID: sessionID, Token: token, Identity: identity}, nil
}

// Logout clears the session identity and its snapshot, then unregisters it.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	session := s.sessions.Open(ctx, sessionID)
	err := session.Clear(ctx)
	s.sessions.Close(sessionID)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("logout failed")
		return err
	}
	return nil
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
