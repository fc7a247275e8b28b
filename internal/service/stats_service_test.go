package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/logger"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLogs(t *testing.T, repo *fakeWorkoutLogRepo, userID string, starts ...time.Time) {
	t.Helper()
	for _, start := range starts {
		require.NoError(t, repo.Create(context.Background(), &domain.WorkoutLog{
			UserID:        userID,
			StartTime:     start,
			TotalDuration: 1800,
			Sets:          []domain.SetEntry{{Weight: "50", Reps: "10"}},
		}))
	}
}

func TestDashboardIsCached(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)
	logs := &fakeWorkoutLogRepo{}
	m := metrics.NewTestManager()

	seedLogs(t, logs, "user-1",
		fixedNow.Add(-2*time.Hour),
		fixedNow.AddDate(0, 0, -3),
		fixedNow.AddDate(0, 0, -25), // previous month, still in the 30 day window
		fixedNow.AddDate(0, 0, -45), // outside the window
	)

	svc := NewStatsService(logs, cache, 5*time.Minute, m, logger.Discard())
	svc.now = func() time.Time { return fixedNow }

	got, err := svc.Dashboard(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.WorkoutsThisMonth)
	assert.Len(t, got.RecentWorkouts, 3)
	assert.Equal(t, 1500.0, got.TotalWeightLifted)
	assert.Len(t, got.WeeklyActivity, 7)
	assert.True(t, mr.Exists("stats:dashboard:user-1"))

	again, err := svc.Dashboard(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, got.WorkoutsThisMonth, again.WorkoutsThisMonth)
	assert.Equal(t, 1, logs.rangeCalls)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterStatsCache.WithLabelValues("dashboard", "hit")))

	mr.FastForward(6 * time.Minute)
	_, err = svc.Dashboard(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, logs.rangeCalls)
}

func TestDashboardWithoutData(t *testing.T) {
	svc := NewStatsService(&fakeWorkoutLogRepo{}, nil, time.Minute, nil, logger.Discard())
	svc.now = func() time.Time { return fixedNow }

	got, err := svc.Dashboard(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Zero(t, got.WorkoutsThisMonth)
	assert.Zero(t, got.AvgWorkoutDuration)
	assert.Zero(t, got.TotalWeightLifted)
	assert.Len(t, got.WeeklyActivity, 7)
	assert.Empty(t, got.RecentWorkouts)
}

func TestDashboardSurvivesCacheOutage(t *testing.T) {
	cache, mr := newTestCache(t)
	mr.Close()

	logs := &fakeWorkoutLogRepo{}
	seedLogs(t, logs, "user-1", fixedNow.Add(-time.Hour))

	svc := NewStatsService(logs, cache, time.Minute, nil, logger.Discard())
	svc.now = func() time.Time { return fixedNow }

	got, err := svc.Dashboard(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.WorkoutsThisMonth)
}

func TestQuickStats(t *testing.T) {
	logs := &fakeWorkoutLogRepo{}
	// fixedNow is Wednesday 2025-03-19; the week started Monday 2025-03-17
	seedLogs(t, logs, "user-1",
		time.Date(2025, 3, 18, 7, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 12, 7, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 2, 7, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 10, 7, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 28, 23, 0, 0, 0, time.UTC),
	)

	svc := NewStatsService(logs, nil, time.Minute, nil, logger.Discard())
	svc.now = func() time.Time { return fixedNow }

	got, err := svc.Quick(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.ThisMonth)
	assert.Equal(t, 2, got.LastMonth)
	assert.Equal(t, 1, got.ThisWeek)
	assert.Equal(t, 1, got.LastWeek)
	assert.Equal(t, int64(1500), got.TotalLiftedWeight)
	assert.Equal(t, int64(30), got.AvgDurationMinutes)
	assert.Equal(t, "50%", got.MonthlyChange.Change)
	assert.True(t, got.MonthlyChange.IsPositive)
	assert.Equal(t, "0%", got.WeeklyChange.Change)
	assert.Equal(t, 4, logs.rangeCalls)
}

func TestQuickStatsPropagatesStorageErrors(t *testing.T) {
	logs := &fakeWorkoutLogRepo{failRange: errors.New("connection reset")}
	svc := NewStatsService(logs, nil, time.Minute, nil, logger.Discard())

	_, err := svc.Quick(context.Background(), "user-1")
	assert.ErrorContains(t, err, "connection reset")
}
