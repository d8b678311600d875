// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/taibuivan/otakurin/internal/api"
	"github.com/taibuivan/otakurin/internal/catalog"
	"github.com/taibuivan/otakurin/internal/catalog/googlebooks"
	"github.com/taibuivan/otakurin/internal/catalog/httpx"
	"github.com/taibuivan/otakurin/internal/catalog/igdb"
	"github.com/taibuivan/otakurin/internal/catalog/tmdb"
	"github.com/taibuivan/otakurin/internal/core/media"
	"github.com/taibuivan/otakurin/internal/core/tracking"
	"github.com/taibuivan/otakurin/internal/core/wishlist"
	"github.com/taibuivan/otakurin/internal/platform/clock"
	"github.com/taibuivan/otakurin/internal/platform/config"
	"github.com/taibuivan/otakurin/internal/platform/constants"
	"github.com/taibuivan/otakurin/internal/platform/metrics"
	"github.com/taibuivan/otakurin/internal/platform/migration"
	pgstore "github.com/taibuivan/otakurin/internal/platform/postgres"
	redisstore "github.com/taibuivan/otakurin/internal/platform/redis"
	"github.com/taibuivan/otakurin/internal/platform/sec"
	"github.com/taibuivan/otakurin/internal/users/account"
	"github.com/taibuivan/otakurin/internal/users/activity"
	"github.com/taibuivan/otakurin/internal/users/auth"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate to head, then serve the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

// # Startup Sequence
//
//  1. Load configuration and build the logger.
//  2. Connect to PostgreSQL and Redis.
//  3. Run database migrations (idempotent).
//  4. Wire catalogs, services and handlers.
//  5. Serve until SIGINT or SIGTERM, then shut down gracefully.
func serve(parent context.Context) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Use a deadline so misconfiguration is caught quickly rather than
	// hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(ctx, constants.StartupTimeout)
	defer startupCancel()

	// ── PostgreSQL ────────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	if err != nil {
		return fail(log, err, "connect to postgres")
	}
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── Redis ─────────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	if err != nil {
		return fail(log, err, "connect to redis")
	}
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── Migrations ────────────────────────────────────────────────────────
	if err := migrateWith(cfg, log, func(runner *migration.Runner) error { return runner.Up() }); err != nil {
		return err
	}

	// ── Domain Wiring ─────────────────────────────────────────────────────
	server, err := wire(ctx, cfg, log, pool, rdb)
	if err != nil {
		return fail(log, err, "wire services")
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case <-ctx.Done():
		log.Info("shutdown_signal_received")
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		return err
	}

	log.Info("server_stopped_cleanly")
	return nil
}

// wire builds every service and handler on top of the shared connections.
func wire(ctx context.Context, cfg *config.Config, log *slog.Logger, pool *pgxpool.Pool, rdb *redis.Client) (*api.Server, error) {
	clk := clock.System{}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.New(registry)

	// ── Auth ──────────────────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer, clk)
	if err != nil {
		return nil, err
	}
	userRepository := auth.NewUserRepository(pool)
	authService := auth.NewService(userRepository, auth.NewSessionRepository(rdb, clk), tokens, clk, log, cfg.AccessTokenTTL)

	// ── Catalogs ──────────────────────────────────────────────────────────
	transport := func(provider string) *httpx.Client {
		return httpx.New(provider, httpx.Options{RPS: cfg.CatalogRPS, MaxRetries: cfg.CatalogMaxRetries}, recorder, log)
	}

	games := catalog.NewCachedClient[int64](
		igdb.New(igdb.Config{ClientID: cfg.IGDBClientID, ClientSecret: cfg.IGDBClientSecret}, transport("igdb"), clk),
		"igdb", cfg.SearchCacheCapacity, cfg.SearchCacheTTL)
	shows := catalog.NewCachedClient[string](
		tmdb.New(tmdb.Config{APIKey: cfg.TMDBAPIKey}, transport("tmdb")),
		"tmdb", cfg.SearchCacheCapacity, cfg.SearchCacheTTL)
	books := catalog.NewCachedClient[string](
		googlebooks.New(googlebooks.Config{APIKey: cfg.GoogleBooksAPIKey}, transport("googlebooks")),
		"googlebooks", cfg.SearchCacheCapacity, cfg.SearchCacheTTL)

	// ── Media, Ledgers & Users ────────────────────────────────────────────
	mediaOptions := []media.Option{media.WithStaleAfter(cfg.MediaStaleAfter), media.WithMetrics(recorder)}

	gameService := media.NewService(media.Game, media.NewPostgresRepository(pool, media.Game), games, clk, log, mediaOptions...)
	showService := media.NewService(media.Show, media.NewPostgresRepository(pool, media.Show), shows, clk, log, mediaOptions...)
	bookService := media.NewService(media.Book, media.NewPostgresRepository(pool, media.Book), books, clk, log, mediaOptions...)

	ledgerRoutes := func(trackings tracking.Ledger, wishlists wishlist.Ledger) []api.RouteRegistrar {
		return []api.RouteRegistrar{
			tracking.NewHandler(tracking.NewService(trackings, tracking.NewPostgresStore(pool, trackings), clk, log)),
			wishlist.NewHandler(wishlist.NewService(wishlists, wishlist.NewPostgresStore(pool, wishlists), clk, log)),
		}
	}

	// ── Health ────────────────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckSessions: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Users: []api.RouteRegistrar{
			account.NewHandler(account.NewService(userRepository)),
			activity.NewHandler(activity.NewService(activity.NewPostgresRepository(pool))),
		},
		Games: append([]api.RouteRegistrar{media.NewHandler(gameService)}, ledgerRoutes(tracking.Games, wishlist.Games)...),
		Shows: append([]api.RouteRegistrar{media.NewHandler(showService)}, ledgerRoutes(tracking.Shows, wishlist.Shows)...),
		Books: append([]api.RouteRegistrar{media.NewHandler(bookService)}, ledgerRoutes(tracking.Books, wishlist.Books)...),
	}

	return api.NewServer(ctx, cfg, log, recorder, authService, handlers), nil
}
