package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/fashop/marketplace-api/internal/domain"
	"github.com/fashop/marketplace-api/internal/repository"
)

const (
	dashboardCacheKey = "dashboard_stats:v1"
	dashboardCacheTTL = 60 * time.Second
)

type StatsService struct {
	repos  *repository.Repositories
	cache  *redis.Client
	logger *zap.Logger
}

// NewStatsService creates a new stats service. A nil redis client disables
// caching and every call hits the database.
func NewStatsService(repos *repository.Repositories, cache *redis.Client, logger *zap.Logger) *StatsService {
	return &StatsService{
		repos:  repos,
		cache:  cache,
		logger: logger,
	}
}

// Dashboard returns the admin overview, served from cache when a recent copy
// exists. Cache failures fall through to the database.
func (s *StatsService) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, dashboardCacheKey).Result()
		if err == nil {
			var stats domain.DashboardStats
			if err := json.Unmarshal([]byte(raw), &stats); err == nil {
				return &stats, nil
			}
			s.logger.Warn("Discarding unreadable dashboard cache entry", zap.Error(err))
		} else if err != redis.Nil {
			s.logger.Warn("Dashboard cache read failed", zap.Error(err))
		}
	}

	stats, err := s.repos.Stats.Dashboard(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, dashboardCacheKey, raw, dashboardCacheTTL).Err(); err != nil {
				s.logger.Warn("Dashboard cache write failed", zap.Error(err))
			}
		}
	}

	return stats, nil
}
