package service

import (
	"log/slog"
	"time"

	"github.com/mmcdole/romshelf/internal/cache"
	"github.com/mmcdole/romshelf/internal/domain"
)

// Options tune the freshness of cached queries
type Options struct {
	StaleAfter     time.Duration
	HealthInterval time.Duration
}

// Services bundles the fetch hooks of every resource kind over one cache
type Services struct {
	Games        *GameService
	Hacks        *HackService
	Translations *TranslationService
	Utilities    *UtilityService
	Documents    *DocumentService
	Homebrew     *HomebrewService
	Metadata     *MetadataService
	Health       *HealthService

	cache  *cache.Cache
	logger *slog.Logger
}

// New wires every service to src. snapshot may be nil.
func New(src domain.ArchiveSource, c *cache.Cache, snapshot domain.SnapshotStore, opts Options, logger *slog.Logger) *Services {
	logger = defaultLogger(logger)
	policy := cache.After(opts.StaleAfter)
	return &Services{
		Games:        NewGameService(src, c, policy, logger),
		Hacks:        NewHackService(src, c, policy, logger),
		Translations: NewTranslationService(src, c, policy, logger),
		Utilities:    NewUtilityService(src, c, policy, logger),
		Documents:    NewDocumentService(src, c, policy, logger),
		Homebrew:     NewHomebrewService(src, c, policy, logger),
		Metadata:     NewMetadataService(src, c, snapshot, logger),
		Health:       NewHealthService(src, c, cache.After(opts.HealthInterval), logger),
		cache:        c,
		logger:       logger,
	}
}

// Reload drops every cached query so the next fetch of each key goes to
// the archive. Lookups are refetched too.
func (s *Services) Reload() {
	n := s.cache.Len()
	s.cache.Clear()
	s.logger.Info("query cache cleared", "entries", n)
}

// Refresh drops cached record queries, keeping lookups and health
func (s *Services) Refresh() int {
	n := 0
	for _, prefix := range RecordPrefixes() {
		n += s.cache.Invalidate(prefix)
	}
	return n
}
