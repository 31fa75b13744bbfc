// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/netsight/internal/api"
	"github.com/tomtom215/netsight/internal/config"
	"github.com/tomtom215/netsight/internal/database"
	"github.com/tomtom215/netsight/internal/ingest"
	"github.com/tomtom215/netsight/internal/logging"
	"github.com/tomtom215/netsight/internal/supervisor"
	"github.com/tomtom215/netsight/internal/supervisor/services"
	ws "github.com/tomtom215/netsight/internal/websocket"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Netsight stopped with an error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		// Logging is not configured yet; the default logger still writes JSON.
		return err
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("addr", cfg.Server.Addr()).
		Str("watch_dir", cfg.Import.WatchDir).
		Msg("Starting Netsight")

	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	wsHub := ws.NewHub()
	importer := ingest.NewImporter(db, wsHub)

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}

	// Data layer
	tree.AddDataService(services.NewCheckpointService(db, services.DefaultCheckpointInterval))
	if cfg.Import.WatchEnabled() {
		ledger, err := ingest.OpenLedger(cfg.Import.LedgerDir)
		if err != nil {
			return err
		}
		defer func() {
			if err := ledger.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing import ledger")
			}
		}()

		tree.AddDataService(ingest.NewWatcher(cfg.Import.WatchDir, importer, ledger, cfg.Import.Debounce))
		logging.Info().
			Str("dir", cfg.Import.WatchDir).
			Str("ledger", cfg.Import.LedgerDir).
			Msg("Drop-folder import enabled")
	}

	// Messaging layer
	tree.AddMessagingService(services.NewWebSocketHubService(wsHub))

	// API layer
	handler := api.NewHandler(db, importer, wsHub, cfg)
	router := api.NewRouter(handler, cfg)
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		// Uploads and websocket connections outlive a single request
		// timeout; per-request deadlines come from the router.
		IdleTimeout: 60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for services to stop")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	return nil
}
