package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Bitshala/admin/internal/models"
	"github.com/Bitshala/admin/pkg/config"
	appErrors "github.com/Bitshala/admin/pkg/errors"
)

// LeaderboardStore aggregates cumulative scores per student.
type LeaderboardStore interface {
	LeaderboardTotals(ctx context.Context) ([]models.LeaderboardEntry, error)
}

// LeaderboardService serves the cross-week score ranking, cached because
// the aggregate touches every stored row.
type LeaderboardService struct {
	store  LeaderboardStore
	cache  *CacheService
	config config.LeaderboardConfig
	logger *zap.Logger
}

// NewLeaderboardService constructs a LeaderboardService.
func NewLeaderboardService(store LeaderboardStore, cache *CacheService, cfg config.LeaderboardConfig, logger *zap.Logger) *LeaderboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaderboardService{store: store, cache: cache, config: cfg, logger: logger}
}

// Get returns every student's cumulative and exercise-only totals ordered
// by cumulative score descending.
func (s *LeaderboardService) Get(ctx context.Context) ([]models.LeaderboardEntry, error) {
	if !s.config.Enabled {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "leaderboard is disabled")
	}

	var entries []models.LeaderboardEntry
	if hit, _ := s.cache.Get(ctx, cacheKeyLeaderboard, &entries); hit {
		return entries, nil
	}

	entries, err := s.store.LeaderboardTotals(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate leaderboard")
	}

	if err := s.cache.Set(ctx, cacheKeyLeaderboard, entries, s.config.CacheTTL); err != nil {
		s.logger.Warn("leaderboard cache write failed", zap.Error(err))
	}
	return entries, nil
}
