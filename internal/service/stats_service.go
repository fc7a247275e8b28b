package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/logger"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/metrics"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/repository"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/stats"
	"golang.org/x/sync/errgroup"
)

// DashboardWindow is how far back the dashboard looks
const DashboardWindow = 30 * 24 * time.Hour

// StatsService computes dashboard statistics and caches them per user
type StatsService struct {
	logRepo  domain.WorkoutLogRepository
	cache    StatsCache
	cacheTTL time.Duration
	metrics  *metrics.Manager
	log      logger.Logger
	now      func() time.Time
}

// NewStatsService creates a stats service. cache may be nil.
func NewStatsService(
	logRepo domain.WorkoutLogRepository,
	cache StatsCache,
	cacheTTL time.Duration,
	metricsManager *metrics.Manager,
	log logger.Logger,
) *StatsService {
	return &StatsService{
		logRepo:  logRepo,
		cache:    cache,
		cacheTTL: cacheTTL,
		metrics:  metricsManager,
		log:      log,
		now:      time.Now,
	}
}

// Dashboard aggregates the last 30 days of logs. The window is widened to the
// start of the month so the monthly count is never truncated.
func (s *StatsService) Dashboard(ctx context.Context, userID string) (*stats.DashboardStats, error) {
	var cached stats.DashboardStats
	if s.cacheGet(ctx, "dashboard", userID, &cached) {
		return &cached, nil
	}

	now := s.now()
	from := now.Add(-DashboardWindow)
	if monthStart := stats.StartOfMonth(now); monthStart.Before(from) {
		from = monthStart
	}

	logs, err := s.logRepo.ListByDateRange(ctx, userID, from, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load workout logs: %w", err)
	}

	result := stats.Aggregate(logs, now)
	s.cacheSet(ctx, "dashboard", userID, result)
	return &result, nil
}

// Quick compares this month with last month and this week with last week.
// The four windows are fetched concurrently.
func (s *StatsService) Quick(ctx context.Context, userID string) (*stats.QuickStats, error) {
	var cached stats.QuickStats
	if s.cacheGet(ctx, "quick", userID, &cached) {
		return &cached, nil
	}

	ranges := stats.RangesFor(s.now())
	windows := []stats.Range{ranges.ThisMonth, ranges.LastMonth, ranges.ThisWeek, ranges.LastWeek}
	results := make([][]*domain.WorkoutLog, len(windows))

	g, gctx := errgroup.WithContext(ctx)
	for i, window := range windows {
		i, window := i, window
		g.Go(func() error {
			logs, err := s.logRepo.ListByDateRange(gctx, userID, window.From, window.To)
			if err != nil {
				return err
			}
			results[i] = logs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load workout logs: %w", err)
	}

	result := stats.BuildQuickStats(results[0], results[1], results[2], results[3])
	s.cacheSet(ctx, "quick", userID, result)
	return &result, nil
}

func (s *StatsService) cacheGet(ctx context.Context, kind, userID string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}

	var err error
	switch kind {
	case "dashboard":
		err = s.cache.GetDashboardStats(ctx, userID, dest)
	default:
		err = s.cache.GetQuickStats(ctx, userID, dest)
	}

	if err != nil && !errors.Is(err, repository.ErrCacheMiss) {
		s.log.WithError(err).WithField("kind", kind).Warn("stats cache read failed")
	}
	s.metrics.CacheHit(kind, err == nil)
	return err == nil
}

func (s *StatsService) cacheSet(ctx context.Context, kind, userID string, value interface{}) {
	if s.cache == nil {
		return
	}

	var err error
	switch kind {
	case "dashboard":
		err = s.cache.SetDashboardStats(ctx, userID, value, s.cacheTTL)
	default:
		err = s.cache.SetQuickStats(ctx, userID, value, s.cacheTTL)
	}
	if err != nil {
		s.log.WithError(err).WithField("kind", kind).Warn("stats cache write failed")
	}
}
