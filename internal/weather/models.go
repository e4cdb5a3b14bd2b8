package weather

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the calendar date format used for forecast days.
const DateLayout = "2006-01-02"

// ErrNoForecast is returned when no forecast has been fetched yet.
var ErrNoForecast = errors.New("no weather forecast available")

// Location is the fixed point the forecast is fetched for.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// Key returns a canonical string key for logging.
func (l Location) Key() string {
	return fmt.Sprintf("%.4f,%.4f", l.Latitude, l.Longitude)
}

// Forecast is a daily min/max temperature forecast in degrees Celsius.
// The three slices are index aligned and Dates is chronological.
type Forecast struct {
	Dates          []string  `json:"dates"`
	MinTemperature []float64 `json:"minTemperature"`
	MaxTemperature []float64 `json:"maxTemperature"`
}

// Days returns the number of days for which a date and both temperatures exist.
func (f Forecast) Days() int {
	n := len(f.Dates)
	if len(f.MinTemperature) < n {
		n = len(f.MinTemperature)
	}
	if len(f.MaxTemperature) < n {
		n = len(f.MaxTemperature)
	}
	return n
}

// Validate checks that the slices line up and every date parses.
func (f Forecast) Validate() error {
	if len(f.MinTemperature) != len(f.Dates) || len(f.MaxTemperature) != len(f.Dates) {
		return fmt.Errorf("forecast length mismatch: %d dates, %d min, %d max",
			len(f.Dates), len(f.MinTemperature), len(f.MaxTemperature))
	}
	var prev time.Time
	for i, d := range f.Dates {
		ts, err := time.Parse(DateLayout, d)
		if err != nil {
			return fmt.Errorf("forecast day %d: invalid date %q", i, d)
		}
		if i > 0 && !ts.After(prev) {
			return fmt.Errorf("forecast day %d: %s is not after %s", i, d, f.Dates[i-1])
		}
		prev = ts
	}
	return nil
}

// Outlook is either a present forecast or nothing. The zero value is absent.
type Outlook struct {
	forecast Forecast
	present  bool
}

// Present wraps an available forecast.
func Present(f Forecast) Outlook {
	return Outlook{forecast: f, present: true}
}

// Absent is the outlook when no forecast is available.
func Absent() Outlook {
	return Outlook{}
}

// Forecast returns the forecast and whether one is present.
func (o Outlook) Forecast() (Forecast, bool) {
	return o.forecast, o.present
}
