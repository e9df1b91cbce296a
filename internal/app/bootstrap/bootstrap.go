package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	catalogservice "merx/contexts/commerce/catalog-service"
	catalogpostgres "merx/contexts/commerce/catalog-service/adapters/postgres"
	catalogqueries "merx/contexts/commerce/catalog-service/application/queries"
	promotionservice "merx/contexts/commerce/promotion-service"
	promotionpostgres "merx/contexts/commerce/promotion-service/adapters/postgres"
	"merx/internal/platform/cache"
	"merx/internal/platform/config"
	"merx/internal/platform/db"
	"merx/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres      *db.Postgres
	windowExpirer func(context.Context) error
	enabled       bool
	pollInterval  time.Duration
	logger        *slog.Logger
}

func BuildAPI(ctx context.Context) (*APIApp, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	promotion, catalog := buildModules(pg, cfg, logger)
	server := httpserver.New(promotion, catalog, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker(ctx context.Context) (*WorkerApp, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	promotion, _ := buildModules(pg, cfg, logger)
	return &WorkerApp{
		postgres:      pg,
		windowExpirer: promotion.WindowExpirer.RunOnce,
		enabled:       cfg.EnableWindowExpirer,
		pollInterval:  cfg.SweepInterval,
		logger:        logger,
	}, nil
}

// buildModules wires both commerce modules against shared infrastructure.
// The catalog module calls the promotion invalidator synchronously, and the
// promotion module reads catalog views in-process through the gateway.
func buildModules(pg *db.Postgres, cfg config.Config, logger *slog.Logger) (promotionservice.Module, catalogservice.Module) {
	promoRepo := promotionpostgres.NewRepository(pg.DB, logger)
	catalogRepo := catalogpostgres.NewRepository(pg.DB, logger)
	matchCache := cache.NewVersioned()

	gateway := catalogGateway{
		views:    catalogqueries.CatalogViewUseCase{Products: catalogRepo, Logger: logger},
		groups:   catalogqueries.CustomerGroupsUseCase{Contacts: catalogRepo, Logger: logger},
		location: catalogqueries.ShopLocationUseCase{Shops: catalogRepo, Logger: logger},
	}

	promotion := promotionservice.NewModule(promotionservice.Dependencies{
		Campaigns:   promoRepo,
		Coupons:     promoRepo,
		FilterIndex: promoRepo,
		Catalog:     gateway,
		Cache:       matchCache,
		Clock:       promotionpostgres.SystemClock{},
		IDGenerator: promotionpostgres.UUIDGenerator{},
		BatchSize:   cfg.SweepBatchSize,
		Logger:      logger,
	})

	catalog := catalogservice.NewModule(catalogservice.Dependencies{
		Products:    catalogRepo,
		Categories:  catalogRepo,
		Contacts:    catalogRepo,
		Shops:       catalogRepo,
		Invalidator: promotionInvalidator{invalidate: promotion.Handler.Invalidate},
		Clock:       catalogpostgres.SystemClock{},
		IDGenerator: catalogpostgres.UUIDGenerator{},
		Logger:      logger,
	})
	return promotion, catalog
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if !w.enabled {
		w.logger.Info("window expirer disabled, worker idle",
			"event", "bootstrap_worker_idle",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.windowExpirer(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
