// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api is the composition root of the HTTP transport: it builds the
services from their stores, mounts them on a chi router behind the shared
middleware chain and runs the [http.Server].

Route map:

	GET  /health, /ready, /metrics      probes, unauthenticated
	     /api/auth/...                  public; /user and /logout carry their own gate
	     /api/tasks/...                 gate + RequireAuth; DELETE also RequireRole(admin)
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/taskboard/internal/auth"
	"github.com/taibuivan/taskboard/internal/core/task"
	"github.com/taibuivan/taskboard/internal/platform/apperr"
	"github.com/taibuivan/taskboard/internal/platform/constants"
	"github.com/taibuivan/taskboard/internal/platform/middleware"
	"github.com/taibuivan/taskboard/internal/platform/respond"
)

type Server struct {
	httpServer *http.Server
	router     chi.Router
	log        *slog.Logger
}

// Handlers are the mounted route sets. Metrics may be nil.
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc
	Metrics   http.Handler

	// Gate resolves the caller from the bearer header or access cookie.
	Gate func(http.Handler) http.Handler

	Auth *auth.Handler
	Task *task.Handler
}

// Options carries the transport settings the server needs.
type Options struct {
	Port     string
	CORS     middleware.AppConfig
	Recorder middleware.RequestRecorder
}

// NewServer assembles the router. ctx stops the global rate limiter's janitor.
func NewServer(ctx context.Context, opts Options, log *slog.Logger, h Handlers) *Server {
	router := chi.NewRouter()
	limiter := middleware.NewIPRateLimiter(ctx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst)

	router.Use(
		middleware.RequestID(),
		middleware.StructuredLogger(log, opts.Recorder),
		chimw.Timeout(constants.GlobalRequestTimeout),
		limiter.Handler,
		middleware.PanicRecovery(log),
		middleware.CORS(opts.CORS),
		chimw.CleanPath,
	)

	router.NotFound(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, apperr.NotFound("Route"))
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, apperr.MethodNotAllowed(request.Method))
	})

	router.Get("/health", h.Liveness)
	router.Get("/ready", h.Readiness)
	if h.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", h.Metrics)
	}

	router.Route("/api", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())

		api.Group(func(protected chi.Router) {
			protected.Use(h.Gate, middleware.RequireAuth)
			protected.Mount("/tasks", h.Task.Routes())
		})
	})

	return &Server{
		router: router,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + opts.Port,
			Handler:           router,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelWarn),
		},
	}
}

// Handler returns the wired router, for httptest servers.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe blocks until Shutdown; it then returns [http.ErrServerClosed].
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections and waits up to timeout for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
