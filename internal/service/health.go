package service

import (
	"context"
	"log/slog"

	"github.com/mmcdole/romshelf/internal/cache"
	"github.com/mmcdole/romshelf/internal/domain"
)

// HealthService probes the archive backend
type HealthService struct {
	repo   domain.HealthRepository
	cache  *cache.Cache
	policy cache.Policy
	logger *slog.Logger
}

// NewHealthService creates a new health service. The repository is
// expected to apply its own single retry.
func NewHealthService(repo domain.HealthRepository, c *cache.Cache, policy cache.Policy, logger *slog.Logger) *HealthService {
	return &HealthService{repo: repo, cache: c, policy: policy, logger: defaultLogger(logger)}
}

// Check returns the backend health report
func (s *HealthService) Check(ctx context.Context) cache.Result[domain.Health] {
	res := cache.Fetch(ctx, s.cache, PrefixHealth, s.policy, s.repo.Health)
	logResult(s.logger, PrefixHealth, res.Status, res.Err)
	if res.OK() && !res.Data.Healthy() {
		s.logger.Warn("archive degraded", "status", res.Data.Status, "database", res.Data.Database)
	}
	return res
}
