// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Navigant back-office HTTP API.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Start background writers for audit and notifications.
//  7. Wire domain services and HTTP handlers.
//  8. Seed the first SUPER_ADMIN when the admin table is empty.
//  9. Start HTTP server with graceful shutdown.
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

	"github.com/navigant/backoffice/internal/admins/account"
	"github.com/navigant/backoffice/internal/admins/auth"
	"github.com/navigant/backoffice/internal/api"
	"github.com/navigant/backoffice/internal/careers/application"
	"github.com/navigant/backoffice/internal/content/casestudy"
	"github.com/navigant/backoffice/internal/crm/lead"
	"github.com/navigant/backoffice/internal/crm/review"
	"github.com/navigant/backoffice/internal/platform/async"
	"github.com/navigant/backoffice/internal/platform/config"
	"github.com/navigant/backoffice/internal/platform/constants"
	"github.com/navigant/backoffice/internal/platform/metrics"
	"github.com/navigant/backoffice/internal/platform/migration"
	pgstore "github.com/navigant/backoffice/internal/platform/postgres"
	redisstore "github.com/navigant/backoffice/internal/platform/redis"
	"github.com/navigant/backoffice/internal/platform/sec"
	"github.com/navigant/backoffice/internal/system/audit"
	"github.com/navigant/backoffice/internal/system/notification"
)

const appName = "navigant-backoffice"

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Background writers ─────────────────────────────────────────────
	m := metrics.New()

	auditQueue := async.NewDispatcher(async.Options{
		Name:        "audit",
		QueueSize:   cfg.AuditQueueSize,
		Workers:     cfg.AuditWorkers,
		TaskTimeout: constants.BackgroundWriteTimeout,
		OnDrop:      m.AsyncDropped,
	}, log)
	notifyQueue := async.NewDispatcher(async.Options{
		Name:        "notification",
		QueueSize:   cfg.AuditQueueSize,
		Workers:     1,
		TaskTimeout: constants.BackgroundWriteTimeout,
		OnDrop:      m.AsyncDropped,
	}, log)

	recorder := audit.NewRecorder(audit.NewPostgresRepository(pool), auditQueue, log)
	notifier := notification.NewService(
		notification.NewPostgresRepository(pool),
		notification.NewLogMailer(log),
		notifyQueue,
		log,
		notification.WithRecordedHook(m.NotificationRecorded),
	)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	tokens, err := sec.NewTokenService([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.JWTTTL)
	must(log, err, "initialize token service")

	admins := auth.NewPostgresAdminRepository(pool)
	authService := auth.NewService(
		admins,
		auth.NewRedisAttemptLimiter(rdb, constants.LoginLockoutWindow),
		tokens,
		log,
		auth.WithFailureHooks(m.LoginFailed, m.LoginLockedOut),
		auth.WithAuditSink(recorder),
	)

	accountService := account.NewService(admins, log)
	reviewService := review.NewService(review.NewPostgresRepository(pool), notifier, cfg.NotifyEmail, log)
	leadService := lead.NewService(lead.NewPostgresRepository(pool), notifier, cfg.NotifyEmail, log)
	applicationService := application.NewService(application.NewPostgresRepository(pool), notifier, cfg.NotifyEmail, log)
	caseStudyService := casestudy.NewService(casestudy.NewPostgresRepository(pool), log)

	// ── 8. First-run seed ─────────────────────────────────────────────────
	if cfg.BootstrapAdminEmail != "" {
		seeded, err := authService.Bootstrap(startupCtx, cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword)
		must(log, err, "bootstrap super admin")
		if seeded != nil {
			log.Info("super_admin_seeded", slog.String("admin_id", seeded.ID))
		}
	}

	liveness, readiness := api.NewHealthHandlers([]api.Check{
		{Name: "postgres", Ping: pgstore.Checker(pool)},
		{Name: "redis", Ping: redisstore.Checker(rdb)},
	}, log)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:      liveness,
		Readiness:     readiness,
		Auth:          auth.NewHandler(authService, recorder, !cfg.IsDevelopment()),
		Accounts:      account.NewHandler(accountService, recorder),
		Reviews:       review.NewHandler(reviewService, recorder, cfg.ReviewBaseURL),
		Leads:         lead.NewHandler(leadService, recorder),
		Applications:  application.NewHandler(applicationService, recorder),
		CaseStudies:   casestudy.NewHandler(caseStudyService, recorder),
		Notifications: notification.NewHandler(notifier),
		ActivityLog:   audit.NewHandler(recorder),
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, api.Identity{Verifier: tokens, Resolver: authService}, m, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))

	exitCode := 0
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		exitCode = 1
	}

	// Requests are drained, so no new background work can arrive.
	drainCtx, drainCancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer drainCancel()
	for _, queue := range []*async.Dispatcher{auditQueue, notifyQueue} {
		if err := queue.Close(drainCtx); err != nil {
			log.Error("background queue drain error", slog.Any("error", err))
			exitCode = 1
		}
	}

	if exitCode != 0 {
		pool.Close()
		os.Exit(exitCode)
	}
	log.Info("server stopped cleanly")
}

// newLogger builds the JSON logger and installs it as the process default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", appName))
	slog.SetDefault(log)
	return log
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
