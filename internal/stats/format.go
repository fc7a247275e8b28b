package stats

import (
	"fmt"
	"time"
)

// Date layouts used in API payloads and exports
const (
	DateLayout      = "2006-01-02"
	ShortDateLayout = "Jan 2"
	LongDateLayout  = "January 2, 2006"
)

// FormatDuration renders seconds as "Xh Ym", or "Ym" under an hour. Negative input counts as 0.
func FormatDuration(seconds int) string {
	seconds = max(seconds, 0)
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatClock renders seconds as "M:SS" for set timers
func FormatClock(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatShortDate renders t like "Mar 7"
func FormatShortDate(t time.Time) string {
	return t.Format(ShortDateLayout)
}

// FormatLongDate renders t like "March 7, 2025"
func FormatLongDate(t time.Time) string {
	return t.Format(LongDateLayout)
}
