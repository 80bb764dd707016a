package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moderndash/dashboard/internal/core/domain"
	"github.com/moderndash/dashboard/internal/core/service"
)

// RequireRole answers 403 unless the session satisfies one of roles. It must run after Guard.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !allowed(c, roles) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// RedirectUnlessRole sends sessions that do not satisfy roles back to the dashboard.
func RedirectUnlessRole(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !allowed(c, roles) {
				return c.Redirect(http.StatusSeeOther, service.DashboardPath)
			}
			return next(c)
		}
	}
}

func allowed(c echo.Context, roles []domain.Role) bool {
	s := SessionFrom(c)
	return s != nil && s.HasRole(roles...)
}
