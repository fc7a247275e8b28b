package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/logger"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWeightService(store ExportStore) (*WeightService, *fakeWeightRepo, *fakeGoalRepo) {
	entries := &fakeWeightRepo{}
	goals := newFakeGoalRepo()
	svc := NewWeightService(entries, goals, store, nil, logger.Discard())
	svc.now = func() time.Time { return fixedNow }
	return svc, entries, goals
}

func addWeights(t *testing.T, svc *WeightService, userID string, weights ...float64) {
	t.Helper()
	for i, w := range weights {
		require.NoError(t, svc.Add(context.Background(), &domain.WeightEntry{
			UserID: userID,
			Date:   fixedNow.AddDate(0, 0, -len(weights)+1+i),
			Weight: w,
		}))
	}
}

func TestWeightEntries(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestWeightService(nil)

	addWeights(t, svc, "user-1", 80, 79.5, 79)

	list, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 79.0, list[0].Weight)
	assert.Equal(t, domain.UnitKg, list[0].Unit)

	t.Run("partial update", func(t *testing.T) {
		w := 78.8
		updated, err := svc.Update(ctx, "user-1", list[0].ID, WeightUpdate{Weight: &w})
		require.NoError(t, err)
		assert.Equal(t, 78.8, updated.Weight)
		assert.Equal(t, list[0].Date, updated.Date)
	})

	t.Run("other users cannot touch entries", func(t *testing.T) {
		_, err := svc.Update(ctx, "user-2", list[0].ID, WeightUpdate{})
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.ErrorIs(t, svc.Delete(ctx, "user-2", list[0].ID), domain.ErrForbidden)
	})

	t.Run("stats", func(t *testing.T) {
		st, err := svc.Stats(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 3, st.Entries)
		assert.Equal(t, 80.0, st.StartingWeight)
		assert.Equal(t, 78.8, st.CurrentWeight)
	})

	require.NoError(t, svc.Delete(ctx, "user-1", list[0].ID))
	list, err = svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestWeightGoalLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestWeightService(nil)

	_, err := svc.Goal(ctx, "user-1")
	assert.ErrorIs(t, err, domain.ErrNoActiveGoal)

	require.NoError(t, svc.SetGoal(ctx, &domain.WeightGoal{UserID: "user-1", TargetWeight: 75, TargetDate: fixedNow.AddDate(0, 1, 0)}))
	require.NoError(t, svc.SetGoal(ctx, &domain.WeightGoal{UserID: "user-1", TargetWeight: 74, TargetDate: fixedNow.AddDate(0, 2, 0)}))

	goal, err := svc.Goal(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 74.0, goal.TargetWeight)
	assert.Equal(t, domain.UnitKg, goal.Unit)

	done, err := svc.CompleteGoal(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, fixedNow, *done.CompletedAt)

	_, err = svc.Goal(ctx, "user-1")
	assert.ErrorIs(t, err, domain.ErrNoActiveGoal)
}

func TestWeightTrend(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestWeightService(nil)

	addWeights(t, svc, "user-1", 70, 70, 70, 70, 70, 70, 70)

	_, err := svc.Trend(ctx, "user-1", 14)
	assert.ErrorIs(t, err, stats.ErrInvalidWindow)

	trend, err := svc.Trend(ctx, "user-1", 7)
	require.NoError(t, err)
	assert.Len(t, trend.Entries, 7)
	require.Len(t, trend.MovingAverage, 1)
	assert.Equal(t, 70.0, trend.MovingAverage[0].Weight)
	assert.Nil(t, trend.Projection)

	require.NoError(t, svc.SetGoal(ctx, &domain.WeightGoal{UserID: "user-1", TargetWeight: 69.5, TargetDate: fixedNow.AddDate(0, 0, 10)}))
	trend, err = svc.Trend(ctx, "user-1", 30)
	require.NoError(t, err)
	require.NotNil(t, trend.Projection)
	assert.Equal(t, int64(-385), trend.Projection.DailyCalories)
	assert.True(t, trend.Projection.IsDeficit)
	assert.Equal(t, 67.5, trend.Bounds.Min)
}

func TestWeightExport(t *testing.T) {
	ctx := context.Background()

	t.Run("download", func(t *testing.T) {
		svc, _, _ := newTestWeightService(nil)
		addWeights(t, svc, "user-1", 80, 79)

		var buf bytes.Buffer
		filename, err := svc.ExportCSV(ctx, "user-1", &buf)
		require.NoError(t, err)
		assert.Equal(t, "weight-data-2025-03-19.csv", filename)
		assert.True(t, strings.HasPrefix(buf.String(), "Date,Weight,Unit,Notes\n"))

		parsed, err := stats.ParseWeightCSV(&buf)
		require.NoError(t, err)
		assert.Len(t, parsed, 2)
	})

	t.Run("archive", func(t *testing.T) {
		store := &fakeExportStore{}
		svc, _, _ := newTestWeightService(store)
		addWeights(t, svc, "user-1", 80, 79)

		archive, err := svc.Archive(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 2, archive.Entries)
		assert.True(t, strings.HasPrefix(archive.Key, "exports/user-1/"))
		assert.True(t, strings.HasSuffix(archive.Key, "/weight-data-2025-03-19.csv"))
		assert.Equal(t, "http://storage.local/exports-bucket/"+archive.Key, archive.URL)
		assert.Contains(t, string(store.data), "Date,Weight,Unit,Notes")
	})

	t.Run("archive without storage", func(t *testing.T) {
		svc, _, _ := newTestWeightService(nil)
		_, err := svc.Archive(ctx, "user-1")
		assert.ErrorIs(t, err, ErrExportStorageDisabled)
	})
}
