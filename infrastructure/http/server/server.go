// Package server exposes the message and account operations over HTTP.
package server

import (
	"context"
	"fmt"
	"hive-signal/errors"
	"hive-signal/gateway"
	"hive-signal/identity"
	"hive-signal/observability"
	"hive-signal/services"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/cors"
)

type StatsProvider interface {
	Stats() observability.DispatchStats
}

type Options struct {
	FrontendOrigin string
	CookieSecure   bool
	GatewayMode    gateway.Mode
}

// Handler serves the message routes, and the auth routes when the resolver
// is account scoped.
type Handler struct {
	log      *slog.Logger
	messages services.IMessageService
	accounts services.IAuthService
	resolver identity.Resolver
	sessions *identity.AccountResolver
	stats    StatsProvider
	options  Options
}

func NewHandler(log *slog.Logger, messages services.IMessageService, accounts services.IAuthService,
	resolver identity.Resolver, stats StatsProvider, options Options) *Handler {
	sessions, _ := resolver.(*identity.AccountResolver)
	return &Handler{
		log:      log,
		messages: messages,
		accounts: accounts,
		resolver: resolver,
		sessions: sessions,
		stats:    stats,
		options:  options,
	}
}

// RegisterRoutes mounts every route both under /api and at the root.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/up", h.Health)
	h.mount(e.Group("/api"))
	h.mount(e.Group(""))
}

func (h *Handler) mount(g *echo.Group) {
	g.POST("/messages", h.CreateMessage)
	g.GET("/messages", h.ListMessages)

	if h.sessions == nil {
		return
	}
	g.POST("/auth/register", h.Register)
	g.POST("/auth/login", h.Login)
	g.POST("/auth/logout", h.Logout)
	g.GET("/auth/current_user", h.CurrentUser)
}

func (h *Handler) carrier(c echo.Context) *cookieCarrier {
	return newCookieCarrier(c, h.options.CookieSecure)
}

// NewEcho builds the echo instance with recovery, access logs and CORS.
func NewEcho(log *slog.Logger, h *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				log.Warn("Request", append(attrs, "err", v.Error)...)
				return nil
			}
			log.Debug("Request", attrs...)
			return nil
		},
	}))
	e.Use(echo.WrapMiddleware(corsPolicy(h.options.FrontendOrigin).Handler))

	h.RegisterRoutes(e)
	return e
}

// corsPolicy allows credentials only for a single named origin.
func corsPolicy(frontendOrigin string) *cors.Cors {
	options := cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept"},
		MaxAge:         300,
	}
	if frontendOrigin != "" && frontendOrigin != "*" {
		options.AllowedOrigins = []string{frontendOrigin}
		options.AllowCredentials = true
	} else {
		options.AllowedOrigins = []string{"*"}
	}
	return cors.New(options)
}

// Server owns the listener lifecycle.
type Server struct {
	log     *slog.Logger
	echo    *echo.Echo
	address string
}

func NewServer(log *slog.Logger, address string, h *Handler) *Server {
	return &Server{log: log, echo: NewEcho(log, h), address: address}
}

// Start blocks until the server stops. A shutdown is not an error.
func (s *Server) Start() error {
	s.log.Info("Starting HTTP server", "address", s.address)
	if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
