package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
)

// MovingAverageWindow is the width of the centered moving average
const MovingAverageWindow = 7

// CaloriesPerKg is the energy equivalent of one kilogram of bodyweight used for projections
const CaloriesPerKg = 7700

// Default y-axis bounds when there is nothing to chart
const (
	DefaultMinBound = 50
	DefaultMaxBound = 100
	boundPadding    = 2
)

// Valid trend windows in days
var trendWindows = map[int]bool{7: true, 30: true, 90: true}

var ErrInvalidWindow = errors.New("invalid trend window")

// ValidateWindow rejects chart windows other than 7, 30 and 90 days
func ValidateWindow(days int) error {
	if !trendWindows[days] {
		return fmt.Errorf("%w: must be one of 7, 30 or 90 days, got %d", ErrInvalidWindow, days)
	}
	return nil
}

// FilterWindow keeps entries dated within the last days before now and sorts them ascending
func FilterWindow(entries []*domain.WeightEntry, days int, now time.Time) []*domain.WeightEntry {
	cutoff := now.AddDate(0, 0, -days)
	out := make([]*domain.WeightEntry, 0, len(entries))
	for _, e := range entries {
		if e != nil && !e.Date.Before(cutoff) {
			out = append(out, e)
		}
	}
	SortAscending(out)
	return out
}

// SortAscending orders entries by date in place. Equal dates keep their relative order.
func SortAscending(entries []*domain.WeightEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
}

// AveragePoint is a moving-average sample
type AveragePoint struct {
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
}

// MovingAverage computes the centered 7-point average over ascending entries.
// Points without three neighbours on each side are omitted, so fewer than
// seven entries produce an empty series.
func MovingAverage(entries []*domain.WeightEntry) []AveragePoint {
	half := MovingAverageWindow / 2
	points := []AveragePoint{}
	for i := half; i+half < len(entries); i++ {
		var sum float64
		for j := i - half; j <= i+half; j++ {
			sum += entries[j].Weight
		}
		points = append(points, AveragePoint{
			Date:   entries[i].Date,
			Weight: sum / MovingAverageWindow,
		})
	}
	return points
}

// Bounds is the y-axis range for a weight chart
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// YBounds pads the weight range (including the goal weight when set) by 2 on each side
func YBounds(entries []*domain.WeightEntry, goalWeight *float64) Bounds {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, e := range entries {
		if e == nil {
			continue
		}
		lo = math.Min(lo, e.Weight)
		hi = math.Max(hi, e.Weight)
	}
	if goalWeight != nil {
		lo = math.Min(lo, *goalWeight)
		hi = math.Max(hi, *goalWeight)
	}
	if math.IsInf(lo, 1) {
		return Bounds{Min: DefaultMinBound, Max: DefaultMaxBound}
	}
	return Bounds{Min: lo - boundPadding, Max: hi + boundPadding}
}

// CalorieProjection is a linear estimate of the daily energy balance needed to
// reach a goal weight. It is a heuristic, not medical advice.
type CalorieProjection struct {
	WeightDiffKg  float64 `json:"weightDiffKg"`
	DaysRemaining int     `json:"daysRemaining"`
	TotalCalories float64 `json:"totalCalories"`
	DailyCalories int64   `json:"dailyCalories"` // negative: deficit, positive: surplus
	IsDeficit     bool    `json:"isDeficit"`
	TargetDate    string  `json:"targetDate"`
	CurrentWeight float64 `json:"currentWeight"`
	TargetWeight  float64 `json:"targetWeight"`
	Unit          string  `json:"unit"`
}

// ProjectCalories computes the daily calorie delta from current to target by targetDate.
// Both weights are in unit; lbs differences are converted to kg first.
func ProjectCalories(current, target float64, unit string, targetDate, now time.Time) CalorieProjection {
	diff := target - current
	if unit == domain.UnitLbs {
		diff *= domain.KgPerLb
	}
	days := int(math.Ceil(float64(targetDate.Sub(now)) / float64(24*time.Hour)))
	if days < 1 {
		days = 1
	}
	total := diff * CaloriesPerKg
	// halves round up, so -38.5 becomes -38
	daily := int64(math.Floor(total/float64(days) + 0.5))
	return CalorieProjection{
		WeightDiffKg:  diff,
		DaysRemaining: days,
		TotalCalories: total,
		DailyCalories: daily,
		IsDeficit:     daily < 0,
		TargetDate:    targetDate.Format(DateLayout),
		CurrentWeight: current,
		TargetWeight:  target,
		Unit:          unit,
	}
}

// WeightTrend is the chart payload for one window
type WeightTrend struct {
	Window        int                   `json:"window"`
	Entries       []*domain.WeightEntry `json:"entries"`
	MovingAverage []AveragePoint        `json:"movingAverage"`
	Bounds        Bounds                `json:"bounds"`
	Projection    *CalorieProjection    `json:"projection,omitempty"`
}

// BuildTrend assembles the chart for entries (any order). Bounds consider the
// whole history, not only the window, so switching windows keeps the axis stable.
func BuildTrend(entries []*domain.WeightEntry, goal *domain.WeightGoal, days int, now time.Time) WeightTrend {
	filtered := FilterWindow(entries, days, now)

	var goalWeight *float64
	if goal != nil && !goal.Completed {
		w := goal.TargetWeight
		goalWeight = &w
	}

	trend := WeightTrend{
		Window:        days,
		Entries:       filtered,
		MovingAverage: MovingAverage(filtered),
		Bounds:        YBounds(entries, goalWeight),
	}

	if goalWeight != nil {
		if latest := Latest(entries); latest != nil {
			p := ProjectCalories(latest.Weight, goal.TargetWeight, goal.Unit, goal.TargetDate, now)
			trend.Projection = &p
		}
	}
	return trend
}

// Latest returns the most recently dated entry, or nil
func Latest(entries []*domain.WeightEntry) *domain.WeightEntry {
	var latest *domain.WeightEntry
	for _, e := range entries {
		if e != nil && (latest == nil || e.Date.After(latest.Date)) {
			latest = e
		}
	}
	return latest
}

// Earliest returns the oldest dated entry, or nil
func Earliest(entries []*domain.WeightEntry) *domain.WeightEntry {
	var first *domain.WeightEntry
	for _, e := range entries {
		if e != nil && (first == nil || e.Date.Before(first.Date)) {
			first = e
		}
	}
	return first
}

// Summarize computes WeightStats over a user's history
func Summarize(entries []*domain.WeightEntry) domain.WeightStats {
	latest, first := Latest(entries), Earliest(entries)
	if latest == nil {
		return domain.WeightStats{Unit: domain.UnitKg}
	}
	st := domain.WeightStats{
		CurrentWeight:  latest.Weight,
		StartingWeight: first.Weight,
		WeightChange:   latest.Weight - first.Weight,
		LowestWeight:   math.Inf(1),
		HighestWeight:  math.Inf(-1),
		Unit:           latest.Unit,
	}
	for _, e := range entries {
		if e == nil {
			continue
		}
		st.Entries++
		st.LowestWeight = math.Min(st.LowestWeight, e.Weight)
		st.HighestWeight = math.Max(st.HighestWeight, e.Weight)
	}
	if first.Weight != 0 {
		st.WeightChangePct = st.WeightChange / first.Weight * 100
	}
	return st
}
