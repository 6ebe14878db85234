// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/recipehub/internal/activity"
	"github.com/tomtom215/recipehub/internal/api"
	"github.com/tomtom215/recipehub/internal/catalog"
	"github.com/tomtom215/recipehub/internal/config"
	"github.com/tomtom215/recipehub/internal/logging"
	"github.com/tomtom215/recipehub/internal/recommend"
	"github.com/tomtom215/recipehub/internal/supervisor"
	"github.com/tomtom215/recipehub/internal/supervisor/services"
)

// app holds the wired components of a running server.
type app struct {
	store   activity.Store
	catalog *catalog.Memory
	engine  *recommend.Engine
	server  *http.Server
	tree    *supervisor.SupervisorTree
	logger  zerolog.Logger
}

// newApp wires storage, the engine, the HTTP API and the supervisor tree.
// ctx bounds refreshes started over HTTP.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*app, error) {
	store, err := openStore(&cfg.Store, logger)
	if err != nil {
		return nil, err
	}

	cat, err := openCatalog(&cfg.Catalog, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	caches, err := recommend.NewCachesFromConfig(cfg.Recommend.Cache)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("build caches: %w", err)
	}

	engine, err := recommend.NewEngine(&cfg.Recommend, recommend.Dependencies{
		Store:   store,
		Recipes: cat,
		Users:   cat,
		Caches:  caches,
	}, logger)
	if err != nil {
		caches.Close()
		_ = store.Close()
		return nil, fmt.Errorf("create engine: %w", err)
	}

	handler := api.NewHandler(engine,
		api.WithReadinessCheck("activity_store", storeCheck(store)),
		api.WithReadinessCheck("catalog", catalogCheck(cat)),
		api.WithRefreshContext(ctx, cfg.Batch.Timeout),
	)
	router := api.NewRouter(handler, middlewareConfig(&cfg.Server))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeCfg)
	if err != nil {
		caches.Close()
		_ = store.Close()
		return nil, fmt.Errorf("create supervisor tree: %w", err)
	}

	if cfg.Batch.Enabled {
		tree.AddDataService(services.NewBatchService(engine, services.BatchConfig{
			Interval:  cfg.Batch.Interval,
			OnStartup: cfg.Batch.OnStartup,
			Timeout:   cfg.Batch.Timeout,
		}, logger))
	} else {
		logger.Info().Msg("Batch refresh disabled; profiles are built on demand")
	}
	tree.AddDataService(services.NewCacheJanitorService(caches.Cleaners(), cfg.Batch.CacheCleanupInterval, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))

	return &app{
		store:   store,
		catalog: cat,
		engine:  engine,
		server:  server,
		tree:    tree,
		logger:  logger,
	}, nil
}

// Close releases the caches and the activity store.
func (a *app) Close() {
	a.engine.Caches().Close()
	if err := a.store.Close(); err != nil {
		a.logger.Error().Err(err).Msg("Error closing activity store")
	}
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func openStore(cfg *config.StoreConfig, logger zerolog.Logger) (activity.Store, error) {
	switch cfg.Backend {
	case config.StoreMemory:
		logger.Warn().Msg("Using in-memory activity store; events are lost on restart")
		return activity.NewMemoryStore(), nil
	case config.StoreBadger:
		store, err := activity.OpenBadger(cfg.Badger(), logger)
		if err != nil {
			return nil, fmt.Errorf("open activity store: %w", err)
		}
		logger.Info().Str("path", cfg.Path).Msg("Activity store opened")
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func openCatalog(cfg *config.CatalogConfig, logger zerolog.Logger) (*catalog.Memory, error) {
	if cfg.Path == "" {
		logger.Warn().Msg("No catalog file configured; starting with an empty catalog")
		return catalog.NewMemory(), nil
	}
	cat, err := catalog.LoadFile(cfg.Path)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("path", cfg.Path).Int("recipes", cat.Len()).Msg("Recipe catalog loaded")
	return cat, nil
}

func middlewareConfig(cfg *config.ServerConfig) *api.MiddlewareConfig {
	mw := api.DefaultMiddlewareConfig()
	mw.CORSAllowedOrigins = cfg.CORSOrigins
	mw.RateLimitRequests = cfg.RateLimitRequests
	mw.RateLimitWindow = cfg.RateLimitWindow
	mw.RateLimitDisabled = cfg.RateLimitDisabled
	mw.RequestTimeout = cfg.RequestTimeout
	return mw
}

var errEmptyCatalog = errors.New("catalog has no recipes")

func catalogCheck(cat *catalog.Memory) api.ReadinessCheck {
	return func(context.Context) error {
		if cat.Len() == 0 {
			return errEmptyCatalog
		}
		return nil
	}
}

// storeCheck seeks to the end of the log, which touches the store without
// reading events.
func storeCheck(store activity.Store) api.ReadinessCheck {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return store.Scan(ctx, activity.Filter{Since: time.Now()}, func(activity.Event) error {
			return activity.ErrStop
		})
	}
}
