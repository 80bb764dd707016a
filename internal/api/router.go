package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/moderndash/dashboard/docs"
	"github.com/moderndash/dashboard/internal/api/handler"
	"github.com/moderndash/dashboard/internal/api/middleware"
	"github.com/moderndash/dashboard/internal/core/domain"
	"github.com/moderndash/dashboard/internal/core/ports"
	"github.com/moderndash/dashboard/internal/core/service"
)

// AdminService is what the admin panel and the users/projects APIs need.
type AdminService interface {
	ports.AdminService
	Overview(ctx context.Context) service.AdminOverview
}

// Deps carries everything the router wires into handlers.
type Deps struct {
	Auth       ports.AuthService
	Tokens     middleware.TokenParser
	Sessions   middleware.SessionLookup
	Admin      AdminService
	Accounts   []domain.Identity
	DemoSecret string
	Cookie     handler.CookieOptions
	Health     map[string]handler.Pinger
	Logger     zerolog.Logger

	// Registry receives the HTTP metrics and backs /metrics. Nil uses the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "moderndash",
		Subsystem:  "http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(middleware.Session(d.Tokens, d.Sessions))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Accounts, d.DemoSecret, d.Cookie)
	dashboardHandler := handler.NewDashboardHandler(d.Admin)
	userHandler := handler.NewUserHandler(d.Admin)
	projectHandler := handler.NewProjectHandler(d.Admin)
	healthHandler := handler.NewHealthHandler(d.Health)

	guard := middleware.Guard()
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Public routes ---
	e.GET("/", handler.Landing)
	e.GET("/login", authHandler.LoginView)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)
	e.GET("/session", authHandler.Session)

	// --- Dashboard views ---
	dash := e.Group("/dashboard", guard)
	dash.GET("", dashboardHandler.Overview)
	dash.GET("/navigation", dashboardHandler.Navigation)
	dash.GET("/admin", dashboardHandler.Admin, middleware.RedirectUnlessRole(domain.RoleAdmin))

	// --- JSON APIs ---
	apiGroup := e.Group("/api", guard)
	apiGroup.GET("/users", userHandler.List, adminOnly)
	apiGroup.POST("/users", userHandler.Create, adminOnly)
	apiGroup.GET("/users/:id", userHandler.Get, adminOnly)
	apiGroup.PATCH("/users/:id", userHandler.Update, adminOnly)
	apiGroup.DELETE("/users/:id", userHandler.Delete, adminOnly)
	apiGroup.GET("/projects", projectHandler.List)
	apiGroup.POST("/projects", projectHandler.Create)

	// --- Operations ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
