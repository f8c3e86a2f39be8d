package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/llehouerou/tides/internal/catalog"
	"github.com/llehouerou/tides/internal/config"
	"github.com/llehouerou/tides/internal/errmsg"
	"github.com/llehouerou/tides/internal/icons"
	"github.com/llehouerou/tides/internal/kv"
	"github.com/llehouerou/tides/internal/library"
	"github.com/llehouerou/tides/internal/logger"
	"github.com/llehouerou/tides/internal/playback"
)

// env holds the services every command shares.
type env struct {
	cfg     *config.Config
	log     *zap.Logger
	kv      kv.Store
	lib     *library.Storage
	store   *playback.Store
	catalog *catalog.Client
}

// openEnv loads config, starts logging, opens storage and hydrates the
// playback store.
func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	icons.Init(cfg.UI.Icons)

	log, err := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	log.Info("starting", zap.Stringer("config", cfg))

	store, err := kv.Open(ctx, cfg.StoreOptions())
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("%s: %w", errmsg.OpOpenStore, err)
	}

	lib := library.New(store, cfg.Storage.KeyPrefix, log)
	pb := playback.New(lib, log)
	pb.Hydrate(ctx)

	return &env{
		cfg:   cfg,
		log:   log,
		kv:    store,
		lib:   lib,
		store: pb,
		catalog: catalog.New(catalog.Options{
			BaseURL:  cfg.Catalog.BaseURL,
			Timeout:  cfg.CatalogTimeout(),
			PageSize: cfg.Catalog.PageSize,
		}),
	}, nil
}

// Close flushes pending library writes and releases storage.
func (e *env) Close() {
	e.store.Close()
	e.lib.Close()
	if err := e.kv.Close(); err != nil {
		e.log.Warn("close storage", zap.Error(err))
	}
	_ = e.log.Sync()
}
