package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/department-enricher/internal/api/http"
	"github.com/spec-kit/department-enricher/internal/api/http/handlers"
	"github.com/spec-kit/department-enricher/internal/auth"
	"github.com/spec-kit/department-enricher/internal/config"
	"github.com/spec-kit/department-enricher/internal/events"
	"github.com/spec-kit/department-enricher/internal/observability"
	"github.com/spec-kit/department-enricher/internal/persistence"
	"github.com/spec-kit/department-enricher/internal/repository"
	"github.com/spec-kit/department-enricher/internal/service"
	"github.com/spec-kit/department-enricher/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	var runRepo repository.RunRepository = repository.NewMemoryRunRepository()
	if pg.Enabled() {
		runRepo = repository.NewRunRepository(pg.PoolHandle())
	}
	var unknownRepo repository.UnknownCodeRepository = repository.NewMemoryUnknownCodeRepository()
	if redis.Enabled() {
		unknownRepo = repository.NewUnknownCodeRepository(redis.Client)
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, unknownRepo, logger))

	enrichmentService := service.NewEnrichmentService(cfg.Enrichment, service.EnrichmentDependencies{
		RunRepo:         runRepo,
		UnknownCodeRepo: unknownRepo,
		Dispatcher:      dispatcher,
		Metrics:         metrics,
		Logger:          logger,
	})
	authService := service.NewAuthService(cfg.Auth)

	app := httptransport.NewApp(httptransport.ServerOptions{
		AppName:        cfg.App.Name,
		RequestTimeout: cfg.App.RequestTimeout(),
		BodyLimitBytes: cfg.App.BodyLimitBytes,
	}, logger, metrics)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Auth:           handlers.NewAuthHandler(authService),
		Enrich:         handlers.NewEnrichHandler(enrichmentService),
		Departments:    handlers.NewDepartmentHandler(enrichmentService),
		Metrics:        handlers.NewMetricsHandler(metrics),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), cfg.Auth.Enabled),
	})

	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("default_key_name", cfg.Enrichment.DefaultKeyName),
			zap.String("on_error", string(cfg.Enrichment.OnError)))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
