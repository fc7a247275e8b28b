package stats

import (
	"testing"
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestPercentChange(t *testing.T) {
	tests := []struct {
		current, previous float64
		want              string
		positive          bool
	}{
		{0, 0, "0%", true},
		{5, 0, "100%", true},
		{8, 4, "100%", true},
		{3, 4, "25%", false},
		{4, 4, "0%", true},
		{1, 3, "67%", false},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, PercentChange(tt.current, tt.previous))
			assert.Equal(t, tt.positive, IsPositiveChange(tt.current, tt.previous))
		})
	}
}

func TestRangesFor(t *testing.T) {
	r := RangesFor(fixedNow)

	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), r.ThisMonth.From)
	assert.Equal(t, fixedNow, r.ThisMonth.To)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), r.LastMonth.From)
	assert.True(t, r.LastMonth.To.Before(r.ThisMonth.From))
	assert.Equal(t, 28, r.LastMonth.To.Day(), "last day of february is included")
	assert.Equal(t, time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC), r.ThisWeek.From)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), r.LastWeek.From)
	assert.Equal(t, time.Sunday, r.LastWeek.To.Weekday())
}

func TestBuildQuickStats(t *testing.T) {
	thisMonth := []*domain.WorkoutLog{
		logAt(fixedNow, 1800, domain.SetEntry{Weight: "20.4", Reps: "10"}),
		logAt(fixedNow, 2700, domain.SetEntry{Weight: "10", Reps: "1"}),
	}
	lastMonth := []*domain.WorkoutLog{logAt(fixedNow, 60)}

	qs := BuildQuickStats(thisMonth, lastMonth, thisMonth[:1], nil)

	assert.Equal(t, 2, qs.ThisMonth)
	assert.Equal(t, 1, qs.LastMonth)
	assert.Equal(t, int64(214), qs.TotalLiftedWeight)
	assert.Equal(t, int64(38), qs.AvgDurationMinutes)
	assert.Equal(t, "100%", qs.MonthlyChange.Change)
	assert.True(t, qs.MonthlyChange.IsPositive)
	assert.Equal(t, "100%", qs.WeeklyChange.Change)
}

func TestBuildQuickStats_NoData(t *testing.T) {
	qs := BuildQuickStats(nil, nil, nil, nil)

	assert.Zero(t, qs.AvgDurationMinutes)
	assert.Zero(t, qs.TotalLiftedWeight)
	assert.Equal(t, "0%", qs.MonthlyChange.Change)
}
