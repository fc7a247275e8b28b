package stats

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday
var fixedNow = time.Date(2025, time.March, 19, 18, 0, 0, 0, time.UTC)

func logAt(t time.Time, duration int, sets ...domain.SetEntry) *domain.WorkoutLog {
	return &domain.WorkoutLog{StartTime: t, TotalDuration: duration, Sets: sets}
}

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil, fixedNow)

	assert.Equal(t, 0, got.WorkoutsThisMonth)
	assert.Equal(t, 0.0, got.AvgWorkoutDuration)
	assert.Equal(t, 0.0, got.TotalWeightLifted)
	assert.NotNil(t, got.RecentWorkouts)
	assert.Empty(t, got.RecentWorkouts)
	require.Len(t, got.WeeklyActivity, 7)
	for i, bucket := range got.WeeklyActivity {
		assert.Equal(t, i+1, bucket.Day)
		assert.Zero(t, bucket.Count)
	}
}

func TestAggregate(t *testing.T) {
	logs := []*domain.WorkoutLog{
		// Sunday Mar 16
		logAt(time.Date(2025, 3, 16, 9, 0, 0, 0, time.UTC), 1800,
			domain.SetEntry{Weight: "50", Reps: "10"},
			domain.SetEntry{Weight: "bad", Reps: "8"}),
		// Wednesday Mar 19
		logAt(time.Date(2025, 3, 19, 7, 0, 0, 0, time.UTC), 3600,
			domain.SetEntry{Weight: "60", Reps: "5"}),
		// Saturday Feb 22: previous month
		logAt(time.Date(2025, 2, 22, 7, 0, 0, 0, time.UTC), 2400),
	}

	got := Aggregate(logs, fixedNow)

	assert.Equal(t, 2, got.WorkoutsThisMonth)
	assert.InDelta(t, 2600.0, got.AvgWorkoutDuration, 1e-9)
	assert.Equal(t, 800.0, got.TotalWeightLifted)
	assert.Equal(t, 1, got.WeeklyActivity[0].Count, "sunday")
	assert.Equal(t, 1, got.WeeklyActivity[3].Count, "wednesday")
	assert.Equal(t, 1, got.WeeklyActivity[6].Count, "saturday")
	require.Len(t, got.RecentWorkouts, 3)
	assert.Equal(t, logs[1], got.RecentWorkouts[0])
	assert.Equal(t, logs[2], got.RecentWorkouts[2])
}

func TestDashboardStats_JSONShape(t *testing.T) {
	got := Aggregate([]*domain.WorkoutLog{
		logAt(time.Date(2025, 3, 19, 7, 0, 0, 0, time.UTC), 3600),
	}, fixedNow)

	raw, err := json.Marshal(got)
	require.NoError(t, err)

	var decoded struct {
		WorkoutsThisMonth int              `json:"workoutsThisMonth"`
		WeeklyActivity    []map[string]int `json:"weeklyActivity"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, 1, decoded.WorkoutsThisMonth)
	require.Len(t, decoded.WeeklyActivity, 7)
	// weekday buckets are keyed by _id, 4 is Wednesday
	assert.Equal(t, map[string]int{"_id": 4, "count": 1}, decoded.WeeklyActivity[3])
}

func TestAggregate_FutureEntriesNotCountedThisMonth(t *testing.T) {
	logs := []*domain.WorkoutLog{logAt(fixedNow.Add(time.Hour), 60)}

	got := Aggregate(logs, fixedNow)

	assert.Equal(t, 0, got.WorkoutsThisMonth)
}

func TestMostRecent_Caps(t *testing.T) {
	var logs []*domain.WorkoutLog
	for i := 0; i < 8; i++ {
		logs = append(logs, logAt(fixedNow.AddDate(0, 0, -i), 60))
	}

	got := MostRecent(logs, RecentWorkoutsLimit)

	require.Len(t, got, 5)
	assert.Equal(t, logs[0], got[0])
	assert.Equal(t, logs[4], got[4])
}

func TestStartOfWeek_Monday(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"wednesday", fixedNow, time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)},
		{"sunday belongs to previous week", time.Date(2025, 3, 23, 12, 0, 0, 0, time.UTC), time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)},
		{"monday", time.Date(2025, 3, 17, 1, 0, 0, 0, time.UTC), time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StartOfWeek(tt.in))
		})
	}
}
