package service

import (
	"context"
	"log/slog"

	"github.com/mmcdole/romshelf/internal/cache"
	"github.com/mmcdole/romshelf/internal/domain"
)

// UtilityService fetches utilities
type UtilityService struct {
	repo   domain.UtilityRepository
	cache  *cache.Cache
	policy cache.Policy
	logger *slog.Logger
}

// NewUtilityService creates a new utility service
func NewUtilityService(repo domain.UtilityRepository, c *cache.Cache, policy cache.Policy, logger *slog.Logger) *UtilityService {
	return &UtilityService{repo: repo, cache: c, policy: policy, logger: defaultLogger(logger)}
}

func (s *UtilityService) List(ctx context.Context, params domain.ListParams) cache.Result[domain.Page[domain.Utility]] {
	return fetchList(ctx, s.cache, s.policy, s.logger, domain.KindUtility, params, s.repo.ListUtilities)
}

func (s *UtilityService) Detail(ctx context.Context, id int) cache.Result[domain.UtilityDetail] {
	return fetchByID(ctx, s.cache, s.policy, s.logger, DetailKey(domain.KindUtility, id), id,
		func(ctx context.Context) (domain.UtilityDetail, error) {
			return s.repo.GetUtility(ctx, id)
		})
}

// DocumentService fetches documents
type DocumentService struct {
	repo   domain.DocumentRepository
	cache  *cache.Cache
	policy cache.Policy
	logger *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(repo domain.DocumentRepository, c *cache.Cache, policy cache.Policy, logger *slog.Logger) *DocumentService {
	return &DocumentService{repo: repo, cache: c, policy: policy, logger: defaultLogger(logger)}
}

func (s *DocumentService) List(ctx context.Context, params domain.ListParams) cache.Result[domain.Page[domain.Document]] {
	return fetchList(ctx, s.cache, s.policy, s.logger, domain.KindDocument, params, s.repo.ListDocuments)
}

func (s *DocumentService) Detail(ctx context.Context, id int) cache.Result[domain.DocumentDetail] {
	return fetchByID(ctx, s.cache, s.policy, s.logger, DetailKey(domain.KindDocument, id), id,
		func(ctx context.Context) (domain.DocumentDetail, error) {
			return s.repo.GetDocument(ctx, id)
		})
}

// HomebrewService fetches homebrew
type HomebrewService struct {
	repo   domain.HomebrewRepository
	cache  *cache.Cache
	policy cache.Policy
	logger *slog.Logger
}

// NewHomebrewService creates a new homebrew service
func NewHomebrewService(repo domain.HomebrewRepository, c *cache.Cache, policy cache.Policy, logger *slog.Logger) *HomebrewService {
	return &HomebrewService{repo: repo, cache: c, policy: policy, logger: defaultLogger(logger)}
}

func (s *HomebrewService) List(ctx context.Context, params domain.ListParams) cache.Result[domain.Page[domain.Homebrew]] {
	return fetchList(ctx, s.cache, s.policy, s.logger, domain.KindHomebrew, params, s.repo.ListHomebrew)
}

func (s *HomebrewService) Detail(ctx context.Context, id int) cache.Result[domain.HomebrewDetail] {
	return fetchByID(ctx, s.cache, s.policy, s.logger, DetailKey(domain.KindHomebrew, id), id,
		func(ctx context.Context) (domain.HomebrewDetail, error) {
			return s.repo.GetHomebrew(ctx, id)
		})
}
