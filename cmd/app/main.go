// PackVault is a pack-opening allocation service: it sells sealed packs,
// rolls a rarity, reserves scarce serial numbers and settles the whole
// purchase atomically.
//
// @title PackVault API
// @version 1.0
// @description Pack-opening allocation engine with scarcity-aware item grants
// @BasePath /api/v1
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mintforge/packvault/internal/allocation"
	"github.com/mintforge/packvault/internal/bootstrap"
	"github.com/mintforge/packvault/internal/catalog"
	"github.com/mintforge/packvault/internal/config"
	"github.com/mintforge/packvault/internal/database"
	"github.com/mintforge/packvault/internal/handler"
	"github.com/mintforge/packvault/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	ctx := context.Background()

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxIdleTime, cfg.DBMaxLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(ctx, dbPool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	events, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Failed to initialize event system", "error", err)
		os.Exit(1)
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	catalogService, err := catalog.NewService(repos.Catalog)
	if err != nil {
		slog.Error("Failed to create catalog service", "error", err)
		os.Exit(1)
	}
	allocationService := allocation.NewService(catalogService, repos.Wallet, repos.Allocator, events.Publisher)

	handler.InitValidator()

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		ReadTimeout:    cfg.HTTPReadTimeout,
		WriteTimeout:   cfg.HTTPWriteTimeout,
	}, dbPool, catalogService, allocationService)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Block until a shutdown signal arrives.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("Shutdown signal received", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server: srv,
		Events: events,
		DBPool: dbPool,
	})
}
