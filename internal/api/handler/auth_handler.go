package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moderndash/dashboard/internal/api/middleware"
	"github.com/moderndash/dashboard/internal/core/domain"
	"github.com/moderndash/dashboard/internal/core/ports"
	"github.com/moderndash/dashboard/internal/core/service"
)

// CookieOptions controls the session cookie written on login.
type CookieOptions struct {
	Secure bool
	TTL    time.Duration
}

type AuthHandler struct {
	authService ports.AuthService
	accounts    []domain.Identity
	demoSecret  string
	cookie      CookieOptions
}

// NewAuthHandler builds the login/logout handler. accounts and demoSecret are shown on the login view.
func NewAuthHandler(authService ports.AuthService, accounts []domain.Identity, demoSecret string, cookie CookieOptions) *AuthHandler {
	return &AuthHandler{authService: authService, accounts: accounts, demoSecret: demoSecret, cookie: cookie}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string          `json:"token"`
	User  domain.Identity `json:"user"`
}

type demoAccount struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Label    string `json:"label"`
}

type loginViewResponse struct {
	Title        string        `json:"title"`
	Subtitle     string        `json:"subtitle"`
	DemoAccounts []demoAccount `json:"demo_accounts"`
}

type sessionResponse struct {
	State         domain.GuardState `json:"state"`
	Loading       bool              `json:"loading"`
	Authenticated bool              `json:"authenticated"`
	User          *domain.Identity  `json:"user,omitempty"`
}

// LoginView returns the login page model. Authenticated sessions are sent to the dashboard.
//
// @Summary      Login view
// @Tags         auth
// @Produce      json
// @Success      200  {object}  loginViewResponse
// @Success      303  "already authenticated"
// @Router       /login [get]
func (h *AuthHandler) LoginView(c echo.Context) error {
	if s := middleware.SessionFrom(c); s != nil {
		if _, ok := s.Current(); ok {
			return c.Redirect(http.StatusSeeOther, service.DashboardPath)
		}
	}

	accounts := make([]demoAccount, 0, len(h.accounts))
	for _, a := range h.accounts {
		accounts = append(accounts, demoAccount{
			Email:    a.Email,
			Password: h.demoSecret,
			Role:     string(a.Role),
			Label:    a.Role.Label(),
		})
	}

	return c.JSON(http.StatusOK, loginViewResponse{
		Title:        "Sign in to ModernDash",
		Subtitle:     "Use one of the demo accounts below",
		DemoAccounts: accounts,
	})
}

// Login authenticates the credentials against the request's session and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      504   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	result, err := h.authService.Login(c.Request().Context(), middleware.SessionIDFrom(c), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(h.sessionCookie(result.Token, int(h.cookie.TTL.Seconds())))
	return c.JSON(http.StatusOK, authResponse{Token: result.Token, User: result.Identity})
}

// Logout clears the session identity and the session cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), middleware.SessionIDFrom(c)); err != nil {
		return err
	}
	c.SetCookie(h.sessionCookie("", -1))
	return c.JSON(http.StatusOK, map[string]string{"status": "logged_out"})
}

// Session reports the request's session state.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	s := middleware.SessionFrom(c)
	resp := sessionResponse{State: service.NewRouteGuard().Observe(s)}
	if s != nil {
		resp.Loading = s.Loading()
		if identity, ok := s.Current(); ok {
			resp.Authenticated = true
			resp.User = &identity
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
