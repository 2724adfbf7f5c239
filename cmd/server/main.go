package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	httpapi "numerus/internal/http"
	"numerus/internal/numerology/handler"
	nmetrics "numerus/internal/numerology/metrics"
	"numerus/internal/numerology/registry"
	"numerus/internal/numerology/registry/store"
	"numerus/internal/numerology/service"
	"numerus/internal/platform/config"
	"numerus/internal/platform/httpserver"
	"numerus/internal/platform/logger"
	"numerus/internal/platform/metrics"
	redisplatform "numerus/internal/platform/redis"
)

// main wires dependencies and runs the HTTP server until SIGINT or SIGTERM.
// SIGHUP drops every cached rule-set so edited definitions take effect.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	health := httpapi.NewHealth()

	source, cleanup, err := buildSource(ctx, cfg, log, health)
	if err != nil {
		return err
	}
	defer cleanup()

	numerologyMetrics := nmetrics.New()
	reg := registry.New(source,
		registry.WithLogger(log),
		registry.WithMetrics(numerologyMetrics),
	)
	svc := service.New(reg,
		service.WithLogger(log),
		service.WithMetrics(numerologyMetrics),
		service.WithDefaultSystem(cfg.Systems.Default),
		service.WithBatchConcurrency(cfg.Batch.Concurrency),
	)

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:  log,
		Metrics: metrics.New(),
		Health:  health,
		APIs: []httpapi.Registrar{
			handler.New(svc, log, cfg.Batch.MaxItems),
		},
	})

	go reloadOnHangup(ctx, reg, log)

	srv := httpserver.New(cfg.Server.Addr, router)
	return httpserver.Run(ctx, srv, cfg.Server.ShutdownTimeout, log)
}

// buildSource layers the configured rule-set stores: an optional Postgres
// store in front of the file definitions, and an optional Redis cache in
// front of both.
func buildSource(ctx context.Context, cfg config.Config, log *slog.Logger, health *httpapi.Health) (registry.Source, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var source registry.Source = store.Embedded()
	if cfg.Systems.Dir != "" {
		source = store.NewFSSource(os.DirFS(cfg.Systems.Dir))
		log.Info("loading systems from directory", "dir", cfg.Systems.Dir)
	}

	if cfg.Database.URL != "" {
		db, err := sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		closers = append(closers, func() { _ = db.Close() })
		if err := db.PingContext(ctx); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("ping database: %w", err)
		}
		pg := store.NewPostgresSource(db)
		if err := pg.Migrate(ctx); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("migrate database: %w", err)
		}
		health.Add("postgres", db.PingContext)
		source = store.NewChain(pg, source)
		log.Info("postgres rule-set store enabled")
	}

	client, err := redisplatform.New(ctx, cfg.Redis)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if client != nil {
		closers = append(closers, func() { _ = client.Close() })
		health.Add("redis", client.Health)
		source = store.NewRedisCache(client, source, cfg.Systems.CacheTTL, log)
		log.Info("redis rule-set cache enabled", "ttl", cfg.Systems.CacheTTL.String())
	}

	return source, cleanup, nil
}

func reloadOnHangup(ctx context.Context, reg *registry.Registry, log *slog.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			reg.InvalidateAll()
			log.Info("rule-set cache cleared")
		}
	}
}
