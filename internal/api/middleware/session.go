package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/moderndash/dashboard/internal/core/ports"
)

const (
	// CookieName is the cookie carrying the session token.
	CookieName = "moderndash_session"

	sessionKey   = "session"
	sessionIDKey = "session_id"
)

// TokenParser resolves a session token to its session id.
type TokenParser interface {
	Parse(token string) (string, error)
}

// SessionLookup opens the session registered under an id.
type SessionLookup interface {
	Lookup(ctx context.Context, sessionID string) ports.Session
}

// Session resolves the request's session from the cookie or a bearer token and
// stores it in the context. Requests without a valid token carry no session;
// the guard treats them as unauthenticated.
func Session(tokens TokenParser, sessions SessionLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFrom(c)
			if raw == "" {
				return next(c)
			}

			sid, err := tokens.Parse(raw)
			if err != nil {
				c.Logger().Debugf("ignoring session token: %v", err)
				return next(c)
			}

			SetSession(c, sid, sessions.Lookup(c.Request().Context(), sid))
			return next(c)
		}
	}
}

// SetSession stores the session named by sid in the request context.
func SetSession(c echo.Context, sid string, s ports.Session) {
	c.Set(sessionIDKey, sid)
	c.Set(sessionKey, s)
}

// SessionFrom returns the session stored by the Session middleware, or nil.
func SessionFrom(c echo.Context) ports.Session {
	s, _ := c.Get(sessionKey).(ports.Session)
	return s
}

// SessionIDFrom returns the session id named by the request token, or "".
func SessionIDFrom(c echo.Context) string {
	id, _ := c.Get(sessionIDKey).(string)
	return id
}

func tokenFrom(c echo.Context) string {
	if auth := c.Request().Header.Get(echo.HeaderAuthorization); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := c.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}
