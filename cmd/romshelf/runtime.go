package main

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mmcdole/romshelf/internal/adapter"
	"github.com/mmcdole/romshelf/internal/archive"
	"github.com/mmcdole/romshelf/internal/cache"
	"github.com/mmcdole/romshelf/internal/domain"
	"github.com/mmcdole/romshelf/internal/search"
	"github.com/mmcdole/romshelf/internal/service"
)

// runtime is everything a command needs to talk to the archive
type runtime struct {
	cfg       *adapter.Config
	configDir string
	logger    *slog.Logger
	client    *archive.Client
	services  *service.Services
	search    *search.Aggregator

	closers []func()
}

// loadConfig reads the configuration from configDir (or the OS default)
func loadConfig(configDir string) (*adapter.Config, error) {
	cfg, err := adapter.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newRuntime wires configuration, logging, the archive client and the
// fetch hooks
func newRuntime(configDir string) (*runtime, error) {
	cfg, err := loadConfig(configDir)
	if err != nil {
		return nil, err
	}

	// Setup logger
	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	logger = logger.With("session", uuid.NewString())

	rt := &runtime{cfg: cfg, configDir: configDir}

	// The client keeps the plain logger so failed log deliveries are not
	// forwarded again
	rt.client = archive.NewClient(cfg.Server.URL, logger, archive.WithTimeout(cfg.Server.Timeout))

	if cfg.Logging.Remote {
		remote := adapter.NewRemoteHandler(logger.Handler(), rt.client)
		rt.closers = append(rt.closers, remote.Close)
		logger = slog.New(remote)
	}
	slog.SetDefault(logger)
	rt.logger = logger

	var snapshot domain.SnapshotStore
	if cfg.Cache.PersistLookups {
		store, err := cache.NewSnapshotStore(cfg.Cache.Dir, cfg.Server.URL)
		if err != nil {
			logger.Warn("lookup snapshot unavailable", "dir", cfg.Cache.Dir, "error", err)
		} else {
			snapshot = store
			rt.closers = append(rt.closers, func() { _ = store.Close() })
		}
	}

	rt.services = service.New(rt.client, cache.New(logger), snapshot, service.Options{
		StaleAfter:     cfg.Cache.StaleAfter,
		HealthInterval: cfg.Cache.HealthInterval,
	}, logger)

	rt.search = search.NewAggregator(
		rt.services.Games,
		rt.services.Hacks,
		rt.services.Translations,
		search.Options{MinRunes: cfg.Search.MinQuery, PageSize: cfg.Search.PageSize},
		logger,
	)

	return rt, nil
}

// Close releases the snapshot store and flushes remote logging, newest first
func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
}
