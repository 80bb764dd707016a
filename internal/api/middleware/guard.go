package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moderndash/dashboard/internal/api/metrics"
	"github.com/moderndash/dashboard/internal/core/service"
)

type loadingResponse struct {
	Status string `json:"status"`
}

// Guard protects a view. A loading session gets 202 with a neutral body, an
// unauthenticated one is sent to the login page, and an authenticated one continues.
func Guard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			g := service.NewRouteGuard()
			g.Observe(SessionFrom(c))

			d := g.Decide()
			metrics.GuardDecision(string(d.State))
			switch {
			case d.Allow:
				return next(c)
			case d.Redirect != "":
				return c.Redirect(http.StatusSeeOther, d.Redirect)
			default:
				return c.JSON(http.StatusAccepted, loadingResponse{Status: "loading"})
			}
		}
	}
}
