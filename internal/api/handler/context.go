package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moderndash/dashboard/internal/api/middleware"
	"github.com/moderndash/dashboard/internal/core/domain"
	"github.com/moderndash/dashboard/internal/core/ports"
)

// ctxSession returns the authenticated session and its identity, or 401.
func ctxSession(c echo.Context) (ports.Session, domain.Identity, error) {
	s := middleware.SessionFrom(c)
	if s == nil {
		return nil, domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	identity, ok := s.Current()
	if !ok {
		return nil, domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return s, identity, nil
}
