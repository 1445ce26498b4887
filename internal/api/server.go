// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

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

	"github.com/athloshq/athlos/internal/admin/analytics"
	"github.com/athloshq/athlos/internal/admin/auth"
	"github.com/athloshq/athlos/internal/admin/users"
	"github.com/athloshq/athlos/internal/admin/videos"
	"github.com/athloshq/athlos/internal/athlete"
	"github.com/athloshq/athlos/internal/catalog/item"
	"github.com/athloshq/athlos/internal/platform/config"
	"github.com/athloshq/athlos/internal/platform/constants"
	"github.com/athloshq/athlos/internal/platform/middleware"
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
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// AdminAuth handles dashboard sessions and admin account management.
	AdminAuth *auth.Handler

	// AdminUsers handles athlete oversight from the dashboard.
	AdminUsers *users.Handler

	// AdminVideos handles the video catalog and moderation workflow.
	AdminVideos *videos.Handler

	// AdminAnalytics serves the dashboard reports.
	AdminAnalytics *analytics.Handler

	// Athlete serves the consumer athlete profile API.
	Athlete *athlete.Handler

	// Item serves the consumer product catalog API.
	Item *item.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix. Admin
	// groups sit behind the permission guard inside their own Routes().
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/admin/auth", h.AdminAuth.Routes())
		api.Mount("/admin/users", h.AdminUsers.Routes())
		api.Mount("/admin/videos", h.AdminVideos.Routes())
		api.Mount("/admin/analytics", h.AdminAnalytics.Routes())
		api.Mount("/athletes", h.Athlete.Routes())
		api.Mount("/items", h.Item.Routes())
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

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
