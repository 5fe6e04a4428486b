// Command app runs the moderation standing HTTP service.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/modstanding/internal/bootstrap"
	"github.com/osse101/modstanding/internal/catalog"
	"github.com/osse101/modstanding/internal/config"
	"github.com/osse101/modstanding/internal/database"
	"github.com/osse101/modstanding/internal/logger"
	"github.com/osse101/modstanding/internal/punishment"
	"github.com/osse101/modstanding/internal/server"
	"github.com/osse101/modstanding/internal/settings"
	"github.com/osse101/modstanding/internal/standing"
	"github.com/osse101/modstanding/internal/validation"
)

const shutdownTimeout = 15 * time.Second

func main() {
	initBootLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		logger.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	for _, warning := range cfg.Warnings() {
		logger.Warn("Configuration warning", "detail", warning)
	}

	if err := run(cfg); err != nil {
		logger.Error("Service exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(ctx, database.PoolConfig{
		ConnString:      cfg.GetDBConnString(),
		MaxConns:        cfg.DBMaxConns,
		MaxConnIdleTime: cfg.DBMaxConnIdleTime,
		MaxConnLifetime: cfg.DBMaxConnLifetime,
		ApplicationName: cfg.ServiceName,
	})
	if err != nil {
		return err
	}
	defer dbPool.Close()

	if err := database.Migrate(ctx, dbPool); err != nil {
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	events, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	catalogSvc := catalog.NewService(repos.Catalog, cfg.CatalogCacheTTL)
	if err := bootstrap.SyncCatalog(ctx, catalogSvc, cfg.CatalogPath, cfg.SchemaDir); err != nil {
		return err
	}
	settingsSvc := settings.NewService(repos.Settings, cfg.StatusThresholds())
	standingSvc := standing.NewService(repos.Punishment, repos.Standing, catalogSvc, settingsSvc, events.Publisher)
	punishmentSvc := punishment.NewService(
		repos.Punishment,
		catalogSvc,
		standingSvc,
		events.Publisher,
		punishment.NewIngestor(validation.NewSchemaValidator(), cfg.SchemaDir),
	)

	workers, err := bootstrap.RegisterEventHandlers(ctx, bootstrap.EventHandlerDependencies{
		Events:         events,
		PunishmentRepo: repos.Punishment,
		Standing:       standingSvc,
		Config:         cfg,
	})
	if err != nil {
		return err
	}

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
	}, dbPool, server.Services{
		Punishment: punishmentSvc,
		Standing:   standingSvc,
		Catalog:    catalogSvc,
		Settings:   settingsSvc,
	})

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serveErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:  srv,
		Workers: workers,
		Events:  events,
	})
	return err
}
