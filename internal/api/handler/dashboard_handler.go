package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moderndash/dashboard/internal/core/service"
)

// AdminOverviewer computes the admin panel.
type AdminOverviewer interface {
	Overview(ctx context.Context) service.AdminOverview
}

type DashboardHandler struct {
	admin AdminOverviewer
}

func NewDashboardHandler(admin AdminOverviewer) *DashboardHandler {
	return &DashboardHandler{admin: admin}
}

type adminPanelResponse struct {
	Title string `json:"title"`
	service.AdminOverview
}

// Overview renders the general dashboard for the current identity.
//
// @Summary      Dashboard overview
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  service.Overview
// @Success      202  {object}  map[string]string
// @Success      303  "not authenticated"
// @Security     SessionCookie
// @Router       /dashboard [get]
func (h *DashboardHandler) Overview(c echo.Context) error {
	s, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	overview, ok := service.OverviewFor(s)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return c.JSON(http.StatusOK, overview)
}

// Navigation returns the sidebar entries the current identity may see.
//
// @Summary      Dashboard navigation
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}   domain.NavItem
// @Security     SessionCookie
// @Router       /dashboard/navigation [get]
func (h *DashboardHandler) Navigation(c echo.Context) error {
	s, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, service.NavigationFor(s))
}

// Admin renders the admin panel. Non-admins are redirected to /dashboard by the route middleware.
//
// @Summary      Admin panel
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  adminPanelResponse
// @Success      303  "not an administrator"
// @Security     SessionCookie
// @Router       /dashboard/admin [get]
func (h *DashboardHandler) Admin(c echo.Context) error {
	return c.JSON(http.StatusOK, adminPanelResponse{
		Title:         "Administration",
		AdminOverview: h.admin.Overview(c.Request().Context()),
	})
}
