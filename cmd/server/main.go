package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/go-todo-list/internal/adapter"
	"github.com/MKhiriev/go-todo-list/internal/cache"
	"github.com/MKhiriev/go-todo-list/internal/config"
	"github.com/MKhiriev/go-todo-list/internal/handler"
	"github.com/MKhiriev/go-todo-list/internal/logger"
	"github.com/MKhiriev/go-todo-list/internal/metrics"
	"github.com/MKhiriev/go-todo-list/internal/server"
	"github.com/MKhiriev/go-todo-list/internal/service"
	"github.com/MKhiriev/go-todo-list/internal/store"
	"github.com/MKhiriev/go-todo-list/internal/workers"
	"github.com/MKhiriev/go-todo-list/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("go-todo-server", "info", false).Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("go-todo-server", cfg.App.LogLevel, !cfg.App.IsProduction())
	log.Debug().Str("env", cfg.App.Env).Str("db_driver", cfg.Storage.DB.Driver).Msg("received configs")

	if err := run(cfg, buildInfo, log); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
}

func run(cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, log *logger.Logger) error {
	ctx := context.Background()

	db, err := store.NewDB(ctx, cfg.Storage.DB, log)
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("error applying migrations: %w", err)
	}

	storages := store.NewStorages(db, log)

	var limiter *cache.RateLimiter
	if cfg.RateLimit.RedisURL != "" {
		redisCache, err := cache.New(ctx, cfg.RateLimit.RedisURL)
		if err != nil {
			return fmt.Errorf("error connecting to redis: %w", err)
		}
		defer redisCache.Close()

		limiter = cache.NewRateLimiter(redisCache, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())

	mailAdapter, err := adapter.NewMailAdapter(cfg.Mail, log)
	if err != nil {
		return fmt.Errorf("error creating mail adapter: %w", err)
	}

	services := service.NewServices(service.Dependencies{
		Storages:    storages,
		DB:          db,
		MailAdapter: mailAdapter,
		Metrics:     appMetrics,
		BuildInfo:   buildInfo,
	}, *cfg, log)

	handlers, err := handler.NewHandlers(services, *cfg, appMetrics, limiter, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	jobs, err := workers.NewWorkers(cfg.Workers, storages, log)
	if err != nil {
		return fmt.Errorf("error creating workers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	jobs.Start()
	defer jobs.Stop()

	return srv.RunServer(ctx)
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
