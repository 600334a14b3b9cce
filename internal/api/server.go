// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/navigant/backoffice/internal/admins/account"
	"github.com/navigant/backoffice/internal/admins/auth"
	"github.com/navigant/backoffice/internal/careers/application"
	"github.com/navigant/backoffice/internal/content/casestudy"
	"github.com/navigant/backoffice/internal/crm/lead"
	"github.com/navigant/backoffice/internal/crm/review"
	"github.com/navigant/backoffice/internal/platform/config"
	"github.com/navigant/backoffice/internal/platform/constants"
	"github.com/navigant/backoffice/internal/platform/metrics"
	"github.com/navigant/backoffice/internal/platform/middleware"
	"github.com/navigant/backoffice/internal/system/audit"
	"github.com/navigant/backoffice/internal/system/notification"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler; always 200 if the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; 200 when Postgres and Redis answer.
	Readiness http.HandlerFunc

	Auth          *auth.Handler
	Accounts      *account.Handler
	Reviews       *review.Handler
	Leads         *lead.Handler
	Applications  *application.Handler
	CaseStudies   *casestudy.Handler
	Notifications *notification.Handler
	ActivityLog   *audit.Handler
}

// Identity bundles what the authentication gate needs.
type Identity struct {
	Verifier middleware.TokenVerifier
	Resolver middleware.PrincipalResolver
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, identity Identity, m *metrics.Metrics, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.ClientIP(cfg.TrustedProxyPrefixes()))
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(m.Instrument)
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(ctx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.Authenticate(identity.Verifier, identity.Resolver))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/admins", h.Accounts.Routes())

		// Public surface
		api.Mount("/reviews", h.Reviews.PublicRoutes())
		api.Mount("/leads", h.Leads.PublicRoutes())
		api.Mount("/applications", h.Applications.PublicRoutes())
		api.Mount("/case-studies", h.CaseStudies.PublicRoutes())

		// Back office
		api.Route("/admin", func(admin chi.Router) {
			admin.Mount("/reviews", h.Reviews.AdminRoutes())
			admin.Mount("/leads", h.Leads.AdminRoutes())
			admin.Mount("/applications", h.Applications.AdminRoutes())
			admin.Mount("/case-studies", h.CaseStudies.AdminRoutes())
			admin.Mount("/notifications", h.Notifications.Routes())
			admin.Mount("/logs", h.ActivityLog.Routes())
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the fully wired router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
