// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Taskboard HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the stores: PostgreSQL (pgxpool + migrations) or in-memory.
//  4. Connect to Redis when REDIS_URL is set (credential cache).
//  5. Wire HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/taskboard/data"
	"github.com/taibuivan/taskboard/internal/api"
	"github.com/taibuivan/taskboard/internal/auth"
	"github.com/taibuivan/taskboard/internal/core/task"
	"github.com/taibuivan/taskboard/internal/platform/config"
	"github.com/taibuivan/taskboard/internal/platform/constants"
	"github.com/taibuivan/taskboard/internal/platform/metrics"
	"github.com/taibuivan/taskboard/internal/platform/middleware"
	"github.com/taibuivan/taskboard/internal/platform/migration"
	pgstore "github.com/taibuivan/taskboard/internal/platform/postgres"
	redisstore "github.com/taibuivan/taskboard/internal/platform/redis"
	"github.com/taibuivan/taskboard/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("storage_driver", cfg.StorageDriver),
	)

	// Root context for the process lifetime; cancelled on shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Startup deadline so misconfiguration is caught quickly rather than hanging.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	registry := metrics.New(cfg.MetricsEnabled)
	deps := api.Dependencies{
		Hasher:     sec.NewArgon2Hasher(sec.DefaultArgon2Params),
		Issuer:     auth.NewIssuer(sec.NewTokenCodec(cfg.AuthIssuer), cfg.AccessTokenSecret, cfg.RefreshTokenSecret),
		Metrics:    registry,
		ReloadUser: cfg.RefreshReloadUser,
	}

	// ── 3. Stores ─────────────────────────────────────────────────────────
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, pgstore.PoolOptions{
			MaxConns:         cfg.DBMaxConns,
			MinConns:         cfg.DBMinConns,
			StatementTimeout: cfg.DBStatementTimeout,
		}, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()

		migrations := data.Migrations()
		if cfg.MigrationPath != "" {
			migrations = os.DirFS(cfg.MigrationPath)
		}
		must(log, migration.RunUp(cfg.DatabaseURL, migrations, log), "run migrations")

		deps.Users = auth.NewPostgresUserRepository(pool)
		deps.Tasks = task.NewPostgresRepository(pool)
		deps.Health.CheckDatabase = func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		}
	default:
		log.Warn("memory_storage_enabled", slog.String("hint", "data is lost on restart"))
		deps.Users = auth.NewMemoryUserRepository()
		deps.Tasks = task.NewMemoryRepository()
	}

	// ── 4. Redis (optional credential cache) ──────────────────────────────
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
		}()

		deps.Users = auth.NewCachedUserRepository(deps.Users, rdb, cfg.CredentialCacheTTL, log, registry)
		deps.Health.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	}

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	credentialLimiter := middleware.NewIPRateLimiter(rootCtx, constants.CredentialRateLimitRPS, constants.CredentialRateLimitBurst)
	deps.CredentialLimit = credentialLimiter.Handler

	handlers := api.BuildHandlers(deps, log)

	server := api.NewServer(rootCtx, api.Options{
		Port:     cfg.ServerPort,
		CORS:     cfg,
		Recorder: registry,
	}, log, handlers)

	// ── 6. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON root logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
