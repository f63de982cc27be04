// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

// Package main is the entry point for the TasteMatch server.
//
// TasteMatch is a self-hosted restaurant discovery service that blends
// item-based collaborative filtering over user ratings with content-based
// matching over restaurant metadata into a single hybrid ranking.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered settings from defaults, config file, and
//     environment variables (Koanf v2)
//  2. Restaurant catalog: loaded once from the JSON dataset
//  3. Preference store: BadgerDB-backed (or in-memory) user preferences
//  4. Rating store: explicit comments, imported reviews, and implicit
//     view/like signals pooled into training events
//  5. Recommendation engine: collaborative + content models
//  6. Supervisor tree: training loop and HTTP server under suture
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (HTTP_PORT, LOG_LEVEL, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting new connections, waits for in-flight requests (10s timeout),
// and closes the preference database.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tastematch/tastematch/internal/api"
	"github.com/tastematch/tastematch/internal/catalog"
	"github.com/tastematch/tastematch/internal/config"
	"github.com/tastematch/tastematch/internal/logging"
	"github.com/tastematch/tastematch/internal/prefs"
	"github.com/tastematch/tastematch/internal/ratings"
	"github.com/tastematch/tastematch/internal/recommend"
	"github.com/tastematch/tastematch/internal/supervisor"
	"github.com/tastematch/tastematch/internal/supervisor/services"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config is not available yet, use the default logger.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", version).
		Str("restaurants_path", cfg.Data.RestaurantsPath).
		Str("prefs_store", cfg.Prefs.Store).
		Msg("Starting TasteMatch")

	cat, err := catalog.Load(cfg.Data.RestaurantsPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load restaurant catalog")
	}
	logging.Info().Int("restaurants", cat.Len()).Msg("Catalog loaded")

	// Preference store: badger for persistence across restarts, memory for
	// development and tests.
	var (
		persister prefs.Persister
		prefsDB   *badger.DB
	)
	initial := prefs.DefaultSnapshot()
	if cfg.Prefs.Store == "badger" {
		store, db, err := prefs.OpenBadgerStore(cfg.Prefs.StorePath)
		if err != nil {
			logging.Fatal().Err(err).Str("path", cfg.Prefs.StorePath).Msg("Failed to open preference store")
		}
		prefsDB = db
		persister = store

		loaded, err := store.LoadOrDefault(cfg.Prefs.UserID)
		if err != nil {
			logging.Warn().Err(err).Msg("Failed to load stored preferences, starting fresh")
		} else {
			initial = loaded
		}
		logging.Info().Str("path", cfg.Prefs.StorePath).Msg("Preference store opened")
	} else {
		logging.Info().Msg("Preference persistence disabled (PREFS_STORE=memory)")
	}
	defer func() {
		if prefsDB == nil {
			return
		}
		if err := prefsDB.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing preference store")
		}
	}()

	manager := prefs.NewManager(cfg.Prefs.UserID, initial, persister, logging.Logger())

	ratingStore := ratings.NewStore(ratings.StoreConfig{
		CommentsPath: cfg.Data.CommentsPath,
		ReviewsPath:  cfg.Data.ReviewsPath,
	}, manager, logging.Logger())

	engine, err := recommend.NewEngine(cfg.Recommend.Engine, cat, ratingStore, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	comments := ratings.NewCommentStore(cfg.Data.CommentsPath)

	handler := api.NewHandler(cat, engine, manager, comments, cfg.API, version)
	router := api.NewRouter(handler, cfg.API)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())

	tree.AddModelService(services.NewTrainService(engine, services.TrainServiceConfig{
		TrainOnStartup: cfg.Recommend.TrainOnStartup,
		TrainInterval:  cfg.Recommend.TrainInterval,
	}, logging.Logger()))

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("TasteMatch stopped gracefully")
}
