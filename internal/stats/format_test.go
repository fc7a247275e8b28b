package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{3661, "1h 1m"},
		{65, "1m"},
		{45, "0m"},
		{0, "0m"},
		{-30, "0m"},
		{7200, "2h 0m"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.seconds))
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "1:05", FormatClock(65))
	assert.Equal(t, "0:00", FormatClock(0))
	assert.Equal(t, "0:00", FormatClock(-5))
	assert.Equal(t, "61:01", FormatClock(3661))
}

func TestFormatDates(t *testing.T) {
	d := time.Date(2025, time.March, 7, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "Mar 7", FormatShortDate(d))
	assert.Equal(t, "March 7, 2025", FormatLongDate(d))
}
