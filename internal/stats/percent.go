package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
)

// PercentChange renders the magnitude of change from previous to current as "N%".
// Direction is reported separately by IsPositiveChange.
func PercentChange(current, previous float64) string {
	if previous == 0 {
		if current > 0 {
			return "100%"
		}
		return "0%"
	}
	pct := math.Round(math.Abs(current-previous) / math.Abs(previous) * 100)
	return fmt.Sprintf("%d%%", int64(pct))
}

// IsPositiveChange reports whether current did not fall below previous
func IsPositiveChange(current, previous float64) bool {
	return current >= previous
}

// Comparison pairs a period value with the previous period
type Comparison struct {
	Current    float64 `json:"current"`
	Previous   float64 `json:"previous"`
	Change     string  `json:"change"`
	IsPositive bool    `json:"isPositive"`
}

// Compare builds a Comparison for current vs previous
func Compare(current, previous float64) Comparison {
	return Comparison{
		Current:    current,
		Previous:   previous,
		Change:     PercentChange(current, previous),
		IsPositive: IsPositiveChange(current, previous),
	}
}

// Range is an inclusive time window
type Range struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// QuickStatsRanges are the four windows compared on the dashboard header
type QuickStatsRanges struct {
	ThisMonth Range
	LastMonth Range
	ThisWeek  Range
	LastWeek  Range
}

// RangesFor computes the QuickStats windows around now. Weeks start on Monday.
// Previous-period windows end one nanosecond before the current period starts.
func RangesFor(now time.Time) QuickStatsRanges {
	monthStart := StartOfMonth(now)
	weekStart := StartOfWeek(now)
	return QuickStatsRanges{
		ThisMonth: Range{From: monthStart, To: now},
		LastMonth: Range{From: monthStart.AddDate(0, -1, 0), To: monthStart.Add(-time.Nanosecond)},
		ThisWeek:  Range{From: weekStart, To: now},
		LastWeek:  Range{From: weekStart.AddDate(0, 0, -7), To: weekStart.Add(-time.Nanosecond)},
	}
}

// QuickStats compares workout counts month over month and week over week.
// Volume and average duration describe the current month.
type QuickStats struct {
	ThisMonth          int        `json:"thisMonth"`
	LastMonth          int        `json:"lastMonth"`
	ThisWeek           int        `json:"thisWeek"`
	LastWeek           int        `json:"lastWeek"`
	TotalLiftedWeight  int64      `json:"totalLiftedWeight"`
	AvgDurationMinutes int64      `json:"avgDuration"`
	MonthlyChange      Comparison `json:"monthlyChange"`
	WeeklyChange       Comparison `json:"weeklyChange"`
}

// BuildQuickStats summarises the four pre-fetched windows
func BuildQuickStats(thisMonth, lastMonth, thisWeek, lastWeek []*domain.WorkoutLog) QuickStats {
	var totalWeight float64
	var totalDuration int64
	for _, l := range thisMonth {
		if l == nil {
			continue
		}
		totalWeight += Volume(l.Sets)
		totalDuration += int64(max(l.TotalDuration, 0))
	}

	qs := QuickStats{
		ThisMonth:         countNonNil(thisMonth),
		LastMonth:         countNonNil(lastMonth),
		ThisWeek:          countNonNil(thisWeek),
		LastWeek:          countNonNil(lastWeek),
		TotalLiftedWeight: int64(math.Round(totalWeight)),
	}
	if qs.ThisMonth > 0 {
		qs.AvgDurationMinutes = int64(math.Round(float64(totalDuration) / float64(qs.ThisMonth) / 60))
	}
	qs.MonthlyChange = Compare(float64(qs.ThisMonth), float64(qs.LastMonth))
	qs.WeeklyChange = Compare(float64(qs.ThisWeek), float64(qs.LastWeek))
	return qs
}
