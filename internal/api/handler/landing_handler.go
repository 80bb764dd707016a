package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type landingResponse struct {
	Product  string            `json:"product"`
	Tagline  string            `json:"tagline"`
	Features []feature         `json:"features"`
	Links    map[string]string `json:"links"`
}

var landing = landingResponse{
	Product: "ModernDash",
	Tagline: "A modern admin dashboard with role-based access control",
	Features: []feature{
		{Title: "Role-based access", Description: "Admin, moderator and user roles with tailored views"},
		{Title: "Rich analytics", Description: "Role-specific stat cards and reports"},
		{Title: "Secure sessions", Description: "Sessions survive restarts and are validated on every load"},
	},
	Links: map[string]string{
		"login":     "/login",
		"dashboard": "/dashboard",
		"docs":      "/swagger/index.html",
	},
}

// Landing returns the public landing page model.
//
// @Summary      Landing page
// @Tags         public
// @Produce      json
// @Success      200  {object}  landingResponse
// @Router       / [get]
func Landing(c echo.Context) error {
	return c.JSON(http.StatusOK, landing)
}
