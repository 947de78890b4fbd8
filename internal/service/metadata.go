package service

import (
	"context"
	"log/slog"

	"github.com/mmcdole/romshelf/internal/cache"
	"github.com/mmcdole/romshelf/internal/domain"
)

// MetadataService fetches lookup tables. They are fetched once per session;
// when a snapshot store is set, the last good copy is served while the
// archive is unreachable.
type MetadataService struct {
	repo     domain.MetadataRepository
	cache    *cache.Cache
	snapshot domain.SnapshotStore // nil disables the offline copy
	logger   *slog.Logger
}

// NewMetadataService creates a new metadata service. snapshot may be nil.
func NewMetadataService(repo domain.MetadataRepository, c *cache.Cache, snapshot domain.SnapshotStore, logger *slog.Logger) *MetadataService {
	return &MetadataService{repo: repo, cache: c, snapshot: snapshot, logger: defaultLogger(logger)}
}

// All returns every lookup table
func (s *MetadataService) All(ctx context.Context) cache.Result[domain.Metadata] {
	key := LookupKey("")
	res := cache.Fetch(ctx, s.cache, key, cache.Lookup, s.repo.GetMetadata)
	logResult(s.logger, key, res.Status, res.Err)

	if res.OK() && s.snapshot != nil {
		if err := s.snapshot.SaveMetadata(res.Data); err != nil {
			s.logger.Warn("failed to save lookup snapshot", "error", err)
		}
	}
	return s.withSnapshot(res)
}

func (s *MetadataService) lookup(ctx context.Context, l domain.Lookup) cache.Result[domain.Metadata] {
	key := LookupKey(l)
	res := cache.Fetch(ctx, s.cache, key, cache.Lookup, func(ctx context.Context) (domain.Metadata, error) {
		return s.repo.GetLookup(ctx, l)
	})
	logResult(s.logger, key, res.Status, res.Err)
	return s.withSnapshot(res)
}

// withSnapshot fills a failed result that has no data from the snapshot.
// The error stays on the result.
func (s *MetadataService) withSnapshot(res cache.Result[domain.Metadata]) cache.Result[domain.Metadata] {
	if !res.Failed() || res.Stale || s.snapshot == nil {
		return res
	}
	if m, ok := s.snapshot.LoadMetadata(); ok {
		s.logger.Info("serving lookup snapshot", "error", res.Err)
		res.Data = m
		res.Stale = true
	}
	return res
}

// Options returns the entries of lookup l flattened for a picker
func (s *MetadataService) Options(ctx context.Context, l domain.Lookup) cache.Result[[]domain.Option] {
	return pick(s.lookup(ctx, l), func(m domain.Metadata) []domain.Option { return m.Options(l) })
}

func (s *MetadataService) Consoles(ctx context.Context) cache.Result[[]domain.Console] {
	return pick(s.lookup(ctx, domain.LookupConsoles), func(m domain.Metadata) []domain.Console { return m.Consoles })
}

func (s *MetadataService) Genres(ctx context.Context) cache.Result[[]domain.Genre] {
	return pick(s.lookup(ctx, domain.LookupGenres), func(m domain.Metadata) []domain.Genre { return m.Genres })
}

func (s *MetadataService) Languages(ctx context.Context) cache.Result[[]domain.Language] {
	return pick(s.lookup(ctx, domain.LookupLanguages), func(m domain.Metadata) []domain.Language { return m.Languages })
}

func (s *MetadataService) PatchStatuses(ctx context.Context) cache.Result[[]domain.PatchStatus] {
	return pick(s.lookup(ctx, domain.LookupPatchStatuses), func(m domain.Metadata) []domain.PatchStatus { return m.PatchStatuses })
}

func (s *MetadataService) HackCategories(ctx context.Context) cache.Result[[]domain.Category] {
	return pick(s.lookup(ctx, domain.LookupHackCategories), func(m domain.Metadata) []domain.Category { return m.HackCategories })
}

func (s *MetadataService) UtilityCategories(ctx context.Context) cache.Result[[]domain.Category] {
	return pick(s.lookup(ctx, domain.LookupUtilityCategories), func(m domain.Metadata) []domain.Category { return m.UtilityCategories })
}

func (s *MetadataService) DocumentCategories(ctx context.Context) cache.Result[[]domain.Category] {
	return pick(s.lookup(ctx, domain.LookupDocumentCategories), func(m domain.Metadata) []domain.Category { return m.DocumentCategories })
}

func (s *MetadataService) HomebrewCategories(ctx context.Context) cache.Result[[]domain.Category] {
	return pick(s.lookup(ctx, domain.LookupHomebrewCategories), func(m domain.Metadata) []domain.Category { return m.HomebrewCategories })
}

func (s *MetadataService) SkillLevels(ctx context.Context) cache.Result[[]domain.SkillLevel] {
	return pick(s.lookup(ctx, domain.LookupSkillLevels), func(m domain.Metadata) []domain.SkillLevel { return m.SkillLevels })
}

func (s *MetadataService) OperatingSystems(ctx context.Context) cache.Result[[]domain.OperatingSystem] {
	return pick(s.lookup(ctx, domain.LookupOperatingSystems), func(m domain.Metadata) []domain.OperatingSystem { return m.OperatingSystems })
}

func pick[T any](r cache.Result[domain.Metadata], field func(domain.Metadata) T) cache.Result[T] {
	return cache.Result[T]{
		Data:      field(r.Data),
		Status:    r.Status,
		Err:       r.Err,
		Stale:     r.Stale,
		FetchedAt: r.FetchedAt,
	}
}
