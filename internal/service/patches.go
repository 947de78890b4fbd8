package service

import (
	"context"
	"log/slog"

	"github.com/mmcdole/romshelf/internal/cache"
	"github.com/mmcdole/romshelf/internal/domain"
)

// HackService fetches ROM hacks and their screenshots
type HackService struct {
	repo   domain.HackRepository
	cache  *cache.Cache
	policy cache.Policy
	logger *slog.Logger
}

// NewHackService creates a new hack service
func NewHackService(repo domain.HackRepository, c *cache.Cache, policy cache.Policy, logger *slog.Logger) *HackService {
	return &HackService{repo: repo, cache: c, policy: policy, logger: defaultLogger(logger)}
}

// List returns one page of hacks
func (s *HackService) List(ctx context.Context, params domain.ListParams) cache.Result[domain.Page[domain.Hack]] {
	return fetchList(ctx, s.cache, s.policy, s.logger, domain.KindHack, params, s.repo.ListHacks)
}

// Detail returns the full record of hack id
func (s *HackService) Detail(ctx context.Context, id int) cache.Result[domain.HackDetail] {
	return fetchByID(ctx, s.cache, s.policy, s.logger, DetailKey(domain.KindHack, id), id,
		func(ctx context.Context) (domain.HackDetail, error) {
			return s.repo.GetHack(ctx, id)
		})
}

// Images returns the screenshots of hack id
func (s *HackService) Images(ctx context.Context, id int) cache.Result[[]domain.Image] {
	return fetchByID(ctx, s.cache, s.policy, s.logger, SubKey(domain.KindHack, id, "images", nil), id,
		func(ctx context.Context) ([]domain.Image, error) {
			return s.repo.HackImages(ctx, id)
		})
}

// TranslationService fetches translations and their screenshots
type TranslationService struct {
	repo   domain.TranslationRepository
	cache  *cache.Cache
	policy cache.Policy
	logger *slog.Logger
}

// NewTranslationService creates a new translation service
func NewTranslationService(repo domain.TranslationRepository, c *cache.Cache, policy cache.Policy, logger *slog.Logger) *TranslationService {
	return &TranslationService{repo: repo, cache: c, policy: policy, logger: defaultLogger(logger)}
}

// List returns one page of translations
func (s *TranslationService) List(ctx context.Context, params domain.ListParams) cache.Result[domain.Page[domain.Translation]] {
	return fetchList(ctx, s.cache, s.policy, s.logger, domain.KindTranslation, params, s.repo.ListTranslations)
}

// Detail returns the full record of translation id
func (s *TranslationService) Detail(ctx context.Context, id int) cache.Result[domain.TranslationDetail] {
	return fetchByID(ctx, s.cache, s.policy, s.logger, DetailKey(domain.KindTranslation, id), id,
		func(ctx context.Context) (domain.TranslationDetail, error) {
			return s.repo.GetTranslation(ctx, id)
		})
}

// Images returns the screenshots of translation id
func (s *TranslationService) Images(ctx context.Context, id int) cache.Result[[]domain.Image] {
	return fetchByID(ctx, s.cache, s.policy, s.logger, SubKey(domain.KindTranslation, id, "images", nil), id,
		func(ctx context.Context) ([]domain.Image, error) {
			return s.repo.TranslationImages(ctx, id)
		})
}
