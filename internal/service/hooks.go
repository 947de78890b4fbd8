package service

import (
	"context"
	"log/slog"

	"github.com/mmcdole/romshelf/internal/cache"
	"github.com/mmcdole/romshelf/internal/domain"
)

func fetchList[T any](
	ctx context.Context,
	c *cache.Cache,
	policy cache.Policy,
	logger *slog.Logger,
	kind domain.Kind,
	params domain.ListParams,
	fn func(context.Context, domain.ListParams) (domain.Page[T], error),
) cache.Result[domain.Page[T]] {
	key := ListKey(kind, params)
	res := cache.Fetch(ctx, c, key, policy, func(ctx context.Context) (domain.Page[T], error) {
		return fn(ctx, params)
	})
	logResult(logger, key, res.Status, res.Err)
	return res
}

// fetchByID skips the request entirely when id is unset
func fetchByID[T any](
	ctx context.Context,
	c *cache.Cache,
	policy cache.Policy,
	logger *slog.Logger,
	key string,
	id int,
	fn func(context.Context) (T, error),
) cache.Result[T] {
	if id <= 0 {
		return cache.Disabled[T]()
	}
	res := cache.Fetch(ctx, c, key, policy, fn)
	logResult(logger, key, res.Status, res.Err)
	return res
}

func logResult(logger *slog.Logger, key string, status cache.Status, err error) {
	if status == cache.StatusError {
		logger.Error("fetch failed", "key", key, "error", err)
		return
	}
	logger.Debug("fetched", "key", key)
}

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
