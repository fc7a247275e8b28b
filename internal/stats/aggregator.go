// Package stats turns raw workout and weight records into dashboard view data.
// Every function here is pure: callers pass "now" explicitly and inputs are never mutated.
package stats

import (
	"sort"
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
)

// RecentWorkoutsLimit caps DashboardStats.RecentWorkouts
const RecentWorkoutsLimit = 5

// DayActivity is one weekday bucket. Day runs 1 (Sunday) through 7 (Saturday).
type DayActivity struct {
	Day   int `json:"_id"`
	Count int `json:"count"`
}

// DashboardStats is the derived dashboard view model
type DashboardStats struct {
	WorkoutsThisMonth  int                  `json:"workoutsThisMonth"`
	AvgWorkoutDuration float64              `json:"avgWorkoutDuration"` // seconds
	WeeklyActivity     []DayActivity        `json:"weeklyActivity"`
	TotalWeightLifted  float64              `json:"totalWeightLifted"`
	RecentWorkouts     []*domain.WorkoutLog `json:"recentWorkouts"`
}

// Aggregate computes dashboard metrics over logs. An empty input is the valid
// "no data" state: all counters are zero and the seven weekday buckets are still present.
func Aggregate(logs []*domain.WorkoutLog, now time.Time) DashboardStats {
	monthStart := StartOfMonth(now)

	out := DashboardStats{
		WeeklyActivity: emptyWeek(),
		RecentWorkouts: []*domain.WorkoutLog{},
	}

	var totalDuration int64
	for _, l := range logs {
		if l == nil {
			continue
		}
		start := l.StartTime.In(now.Location())
		if !start.Before(monthStart) && !start.After(now) {
			out.WorkoutsThisMonth++
		}
		out.WeeklyActivity[int(start.Weekday())].Count++
		totalDuration += int64(max(l.TotalDuration, 0))
		out.TotalWeightLifted += Volume(l.Sets)
	}

	if n := countNonNil(logs); n > 0 {
		out.AvgWorkoutDuration = float64(totalDuration) / float64(n)
	}
	out.RecentWorkouts = MostRecent(logs, RecentWorkoutsLimit)
	return out
}

// MostRecent returns up to limit logs ordered by start time, newest first
func MostRecent(logs []*domain.WorkoutLog, limit int) []*domain.WorkoutLog {
	sorted := make([]*domain.WorkoutLog, 0, len(logs))
	for _, l := range logs {
		if l != nil {
			sorted = append(sorted, l)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.After(sorted[j].StartTime)
	})
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// StartOfMonth is midnight on the first day of t's month, in t's location
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// StartOfWeek is midnight on the Monday of t's week, in t's location
func StartOfWeek(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	d := t.AddDate(0, 0, -daysSinceMonday)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

func emptyWeek() []DayActivity {
	week := make([]DayActivity, 7)
	for i := range week {
		week[i] = DayActivity{Day: i + 1}
	}
	return week
}

func countNonNil(logs []*domain.WorkoutLog) int {
	n := 0
	for _, l := range logs {
		if l != nil {
			n++
		}
	}
	return n
}
