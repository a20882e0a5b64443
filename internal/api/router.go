package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/medicaps/clubs-portal/docs"
	"github.com/medicaps/clubs-portal/internal/api/handler"
	"github.com/medicaps/clubs-portal/internal/api/metrics"
	"github.com/medicaps/clubs-portal/internal/api/middleware"
	"github.com/medicaps/clubs-portal/internal/api/token"
	"github.com/medicaps/clubs-portal/internal/core/domain"
	"github.com/medicaps/clubs-portal/internal/core/ports"
)

// Dependencies is everything the router wires into handlers.
type Dependencies struct {
	Auth    ports.AuthService
	Gate    ports.Gate
	Clubs   ports.ClubService
	Members ports.MemberService
	Events  ports.EventService
	Guests  ports.GuestService

	Tokens   *token.Issuer
	Loop     middleware.Runner
	Throttle *middleware.Throttle

	// IPExtractor resolves the client IP used by the login throttle.
	// Nil means the socket peer address; forwarded headers are ignored.
	IPExtractor echo.IPExtractor

	// Backends are pinged by the readiness probe, keyed by name.
	Backends map[string]handler.Pinger

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.IPExtractor = d.IPExtractor
	if e.IPExtractor == nil {
		e.IPExtractor = echo.ExtractIPDirect()
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(metrics.Middleware())

	authHandler := handler.NewAuthHandler(d.Auth, d.Tokens)
	clubHandler := handler.NewClubHandler(d.Clubs)
	memberHandler := handler.NewMemberHandler(d.Members)
	eventHandler := handler.NewEventHandler(d.Events)
	guestHandler := handler.NewGuestHandler(d.Guests)

	serialize := middleware.Serialize(d.Loop)
	session := middleware.Session(d.Tokens)
	screen := func(role domain.Role) echo.MiddlewareFunc {
		return middleware.Screen(d.Gate, role)
	}

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/login", authHandler.Login, d.Throttle.Middleware(), serialize)
	auth.POST("/logout", authHandler.Logout, serialize)
	auth.GET("/session", authHandler.Session, serialize)

	// --- Admin screen ---
	admin := e.Group("/admin", session, serialize, screen(domain.RoleAdmin))
	admin.GET("/clubs", clubHandler.List)
	admin.POST("/clubs", clubHandler.Create)
	admin.PUT("/clubs/:id", clubHandler.Update)
	admin.DELETE("/clubs/:id", clubHandler.Delete)
	admin.GET("/members", memberHandler.List)
	admin.POST("/members", memberHandler.Create)
	admin.PUT("/members/:id", memberHandler.Update)
	admin.DELETE("/members/:id", memberHandler.Delete)
	admin.POST("/credentials", memberHandler.GenerateCredentials)
	admin.GET("/events", eventHandler.ListAll)

	// --- Member screen ---
	member := e.Group("/member", session, serialize, screen(domain.RoleMember))
	member.GET("/events", eventHandler.ListForMember)
	member.POST("/events", eventHandler.Create)
	member.PUT("/events/:id", eventHandler.Update)
	member.DELETE("/events/:id", eventHandler.Delete)

	// --- Guest screen ---
	guest := e.Group("/guest", session, serialize, screen(domain.RoleGuest))
	guest.GET("/feed", guestHandler.Feed)

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Backends)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger logs one line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
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
