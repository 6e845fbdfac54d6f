// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the RMC course-review web server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Open the session store (Redis or in-memory).
//  5. Run database migrations (idempotent).
//  6. Parse the page templates.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/rmc/data"
	"github.com/taibuivan/rmc/internal/api"
	"github.com/taibuivan/rmc/internal/core/course"
	"github.com/taibuivan/rmc/internal/core/programme"
	"github.com/taibuivan/rmc/internal/core/review"
	"github.com/taibuivan/rmc/internal/core/stats"
	"github.com/taibuivan/rmc/internal/platform/config"
	"github.com/taibuivan/rmc/internal/platform/constants"
	"github.com/taibuivan/rmc/internal/platform/migration"
	pgstore "github.com/taibuivan/rmc/internal/platform/postgres"
	redisstore "github.com/taibuivan/rmc/internal/platform/redis"
	"github.com/taibuivan/rmc/internal/platform/render"
	"github.com/taibuivan/rmc/internal/platform/sec"
	"github.com/taibuivan/rmc/internal/platform/session"
	"github.com/taibuivan/rmc/internal/users/account"
	"github.com/taibuivan/rmc/internal/users/auth"
	"github.com/taibuivan/rmc/pkg/pagination"
	"github.com/taibuivan/rmc/web"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[RMC] service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("session_store", cfg.SessionStore),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Lives as long as the process; stops background workers on shutdown.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Session Store ──────────────────────────────────────────────────
	health := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
	}

	var store session.Store
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		store = session.NewRedisStore(rdb)
		health.CheckSessions = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	default:
		log.Warn("session_store_in_memory", slog.String("reason", "sessions are lost on restart"))
		store = session.NewMemoryStore()
	}

	tokens := sec.NewSessionTokens(cfg.SessionSecret, constants.AppName)
	sessions := session.NewManager(store, tokens, cfg.CookieSecure)

	// ── 5. Migrations ─────────────────────────────────────────────────────
	migrations, err := fs.Sub(data.Migrations, "migrations")
	must(log, err, "open embedded migrations")
	if cfg.MigrationPath != "" {
		migrations = os.DirFS(cfg.MigrationPath)
	}
	must(log, migration.RunUp(cfg.DatabaseURL, migrations, log), "run migrations")

	// ── 6. Templates ──────────────────────────────────────────────────────
	renderer, err := render.New(web.Templates, cfg.TemplateReload)
	must(log, err, "parse templates")

	pageOptions := pagination.Options{PageSize: cfg.PageSize}

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(health, log)

	programmeService := programme.NewService(programme.NewPostgresRepository(pool))

	authService := auth.NewService(
		auth.NewStudentRepository(pool),
		auth.NewStaffRepository(pool),
		programmeService,
	)
	authHandler := auth.NewHandler(authService, sessions, renderer)

	accountService := account.NewService(
		account.NewStudentRepository(pool),
		account.NewStaffRepository(pool),
		log,
	)
	accountHandler := account.NewHandler(accountService, sessions, renderer, pageOptions)

	courseService := course.NewService(course.NewPostgresRepository(pool), programmeService, log)
	courseHandler := course.NewHandler(courseService, renderer, pageOptions)

	reviewService := review.NewService(review.NewPostgresRepository(pool), log)
	reviewHandler := review.NewHandler(reviewService, renderer, pageOptions)

	statsService := stats.NewService(stats.NewPostgresRepository(pool))
	statsHandler := stats.NewHandler(statsService, renderer)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Static:    http.FileServerFS(web.Static),
		Admin:     api.NewAdminPage(renderer),
		Auth:      authHandler,
		Account:   accountHandler,
		Course:    courseHandler,
		Review:    reviewHandler,
		Stats:     statsHandler,
	}

	server := api.NewServer(appCtx, cfg, log, sessions, handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
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
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
