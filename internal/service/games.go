package service

import (
	"context"
	"log/slog"

	"github.com/mmcdole/romshelf/internal/cache"
	"github.com/mmcdole/romshelf/internal/domain"
)

// GameService fetches games and their hack and translation sub-lists
type GameService struct {
	repo   domain.GameRepository
	cache  *cache.Cache
	policy cache.Policy
	logger *slog.Logger
}

// NewGameService creates a new game service
func NewGameService(repo domain.GameRepository, c *cache.Cache, policy cache.Policy, logger *slog.Logger) *GameService {
	return &GameService{repo: repo, cache: c, policy: policy, logger: defaultLogger(logger)}
}

// List returns one page of games
func (s *GameService) List(ctx context.Context, params domain.ListParams) cache.Result[domain.Page[domain.Game]] {
	return fetchList(ctx, s.cache, s.policy, s.logger, domain.KindGame, params, s.repo.ListGames)
}

// Detail returns the full record of game id
func (s *GameService) Detail(ctx context.Context, id int) cache.Result[domain.GameDetail] {
	return fetchByID(ctx, s.cache, s.policy, s.logger, DetailKey(domain.KindGame, id), id,
		func(ctx context.Context) (domain.GameDetail, error) {
			return s.repo.GetGame(ctx, id)
		})
}

// Hacks returns one page of the hacks made for game id
func (s *GameService) Hacks(ctx context.Context, id, page, pageSize int) cache.Result[domain.Page[domain.Hack]] {
	key := SubKey(domain.KindGame, id, "hacks", domain.PageParams(page, pageSize))
	return fetchByID(ctx, s.cache, s.policy, s.logger, key, id,
		func(ctx context.Context) (domain.Page[domain.Hack], error) {
			return s.repo.GameHacks(ctx, id, page, pageSize)
		})
}

// Translations returns one page of the translations of game id
func (s *GameService) Translations(ctx context.Context, id, page, pageSize int) cache.Result[domain.Page[domain.Translation]] {
	key := SubKey(domain.KindGame, id, "translations", domain.PageParams(page, pageSize))
	return fetchByID(ctx, s.cache, s.policy, s.logger, key, id,
		func(ctx context.Context) (domain.Page[domain.Translation], error) {
			return s.repo.GameTranslations(ctx, id, page, pageSize)
		})
}
