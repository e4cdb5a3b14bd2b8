package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDailyExtremes(t *testing.T) {
	at := func(day, hour int) time.Time {
		return time.Date(2026, 10, day, hour, 0, 0, 0, time.UTC)
	}
	readings := []Reading{
		{Timestamp: at(16, 3), MinC: 22, MaxC: 24},
		{Timestamp: at(15, 6), MinC: 25, MaxC: 27},
		{Timestamp: at(15, 15), MinC: 28, MaxC: 34},
		{Timestamp: at(15, 21), MinC: 24, MaxC: 26},
		{Timestamp: at(17, 12), MinC: 27, MaxC: 33},
	}

	got := DailyExtremes(readings, 0)
	assert.Equal(t, Forecast{
		Dates:          []string{"2026-10-15", "2026-10-16", "2026-10-17"},
		MinTemperature: []float64{24, 22, 27},
		MaxTemperature: []float64{34, 24, 33},
	}, got)
	assert.NoError(t, got.Validate())

	limited := DailyExtremes(readings, 2)
	assert.Equal(t, []string{"2026-10-15", "2026-10-16"}, limited.Dates)

	assert.Equal(t, 0, DailyExtremes(nil, 7).Days())
}
