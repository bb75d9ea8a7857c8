// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// CampusCMS is the content core of an institutional website: global and
// dynamic pages built from typed sections, a role-based access policy
// engine, and fire-and-forget webhooks on mutation.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/campuscms/campuscms/internal/cache"
	"github.com/campuscms/campuscms/internal/config"
	"github.com/campuscms/campuscms/internal/content"
	"github.com/campuscms/campuscms/internal/handler/api"
	"github.com/campuscms/campuscms/internal/middleware"
	"github.com/campuscms/campuscms/internal/registry"
	"github.com/campuscms/campuscms/internal/store"
	"github.com/campuscms/campuscms/internal/webhook"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	queries := store.New(db)
	reg := registry.Default()

	if err := queries.SeedGlobalPages(context.Background(), reg); err != nil {
		return fmt.Errorf("seeding global pages: %w", err)
	}
	if cfg.DoSeed {
		if err := queries.SeedSuperAdmin(context.Background(), logger); err != nil {
			return fmt.Errorf("seeding superadmin: %w", err)
		}
	}

	listingCache, err := buildCache(cfg, logger)
	if err != nil {
		return fmt.Errorf("building cache: %w", err)
	}
	defer func() { _ = listingCache.Close() }()

	resolver := content.NewResolver(queries, reg)
	lister := content.NewLister(queries, reg, listingCache,
		time.Duration(cfg.CacheTTL)*time.Second, logger)

	dispatcher := webhook.NewDispatcher(queries, logger, webhook.Config{
		Workers: cfg.WebhookWorkers,
	})
	dispatcher.Start(context.Background())
	defer dispatcher.Stop()

	h := api.NewHandler(queries, reg, resolver, lister, dispatcher, logger)
	r := buildRouter(cfg, queries, h, logger)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// buildCache picks the listing cache backend: Redis when configured,
// in-process memory otherwise.
func buildCache(cfg *config.Config, logger *slog.Logger) (cache.Cache, error) {
	ttl := time.Duration(cfg.CacheTTL) * time.Second

	if cfg.UseRedisCache() {
		logger.Info("using redis cache", "prefix", cfg.CachePrefix)
		return cache.NewRedisCache(cache.RedisCacheOptions{
			URL:        cfg.RedisURL,
			Prefix:     cfg.CachePrefix,
			DefaultTTL: ttl,
		})
	}

	return cache.NewMemoryCache(cache.MemoryCacheOptions{
		DefaultTTL:      ttl,
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	}), nil
}

func buildRouter(cfg *config.Config, queries *store.Queries, h *api.Handler, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", h.Healthz)

	rateLimiter := middleware.NewRateLimiter(float64(cfg.RateLimit), cfg.RateBurst)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(queries, logger))
		r.Use(rateLimiter.Middleware)

		r.Group(h.PublicRoutes)

		r.Route("/editor", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Group(h.EditorRoutes)
		})
	})

	return r
}
