// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Yomira Social mock API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open domain storage: the seeded mock store, or PostgreSQL plus migrations.
//  4. Open refresh session storage: the domain store, or Redis.
//  5. Load or generate the access token signing keys.
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
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

	"github.com/taibuivan/yomira-social/internal/api"
	"github.com/taibuivan/yomira-social/internal/platform/config"
	"github.com/taibuivan/yomira-social/internal/platform/constants"
	"github.com/taibuivan/yomira-social/internal/platform/migration"
	"github.com/taibuivan/yomira-social/internal/platform/mockdb"
	pgstore "github.com/taibuivan/yomira-social/internal/platform/postgres"
	redisstore "github.com/taibuivan/yomira-social/internal/platform/redis"
	"github.com/taibuivan/yomira-social/internal/platform/sec"
	"github.com/taibuivan/yomira-social/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

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
		slog.String("store_driver", cfg.StoreDriver),
		slog.String("session_driver", cfg.SessionDriver),
	)

	// Use a 30s deadline so misconfiguration is caught quickly.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	var (
		stores api.Stores
		probes []api.Probe
	)

	// ── 3. Domain Storage ─────────────────────────────────────────────────
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()

		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		stores = api.PostgresStores(pool)
		probes = append(probes, api.Probe{Name: "postgres", Check: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		}})

	default:
		seed, err := loadSeed(cfg.SeedPath)
		must(log, err, "load seed")

		db, err := mockdb.NewSeeded(seed, mockdb.WithLatency(cfg.MockLatency))
		must(log, err, "seed mock store")

		stores = api.MemoryStores(db)
		log.Info("mock_store_seeded",
			slog.Int("users", len(seed.Users)),
			slog.Duration("latency", cfg.MockLatency),
		)
	}

	// ── 4. Session Storage ────────────────────────────────────────────────
	if cfg.SessionDriver == config.DriverRedis {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()

		stores.Sessions = auth.NewRedisSessionRepository(rdb)
		probes = append(probes, api.Probe{Name: "redis", Check: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}})
	}

	// ── 5. Token Signing ──────────────────────────────────────────────────
	tokens, err := tokenService(cfg)
	must(log, err, "initialize jwt service")
	if cfg.JWTPrivKeyPath == "" {
		log.Warn("jwt_ephemeral_keys", slog.String("reason", "no key paths configured; tokens die with the process"))
	}

	// ── 6. Handlers ───────────────────────────────────────────────────────
	handlers := api.NewHandlers(stores, tokens, auth.Settings{
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
	}, log)
	handlers.Liveness, handlers.Readiness = api.NewHealthHandlers(probes, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	server := api.NewServer(rootCtx, cfg, log, tokens, handlers)

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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("server_shutting_down", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

// loadSeed reads path, or the embedded fixture when path is empty.
func loadSeed(path string) (*mockdb.Seed, error) {
	if path == "" {
		return mockdb.DefaultSeed()
	}
	return mockdb.LoadSeed(path)
}

func tokenService(cfg *config.Config) (*sec.TokenService, error) {
	if cfg.JWTPrivKeyPath == "" {
		return sec.NewEphemeralTokenService(constants.AuthIssuer)
	}
	return sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
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
