package weather

import (
	"sort"
	"time"
)

// Reading is a single sub-daily temperature sample from a provider.
// Timestamp must already be in the location's local time.
type Reading struct {
	Timestamp time.Time
	MinC      float64
	MaxC      float64
}

// DailyExtremes buckets readings by calendar date and keeps the lowest MinC
// and highest MaxC of each day. At most days entries are returned, oldest
// first; days <= 0 means no limit.
func DailyExtremes(readings []Reading, days int) Forecast {
	type extremes struct{ min, max float64 }

	byDay := make(map[string]*extremes)
	for _, r := range readings {
		k := r.Timestamp.Format(DateLayout)
		e, ok := byDay[k]
		if !ok {
			byDay[k] = &extremes{min: r.MinC, max: r.MaxC}
			continue
		}
		if r.MinC < e.min {
			e.min = r.MinC
		}
		if r.MaxC > e.max {
			e.max = r.MaxC
		}
	}

	keys := make([]string, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if days > 0 && len(keys) > days {
		keys = keys[:days]
	}

	f := Forecast{
		Dates:          make([]string, 0, len(keys)),
		MinTemperature: make([]float64, 0, len(keys)),
		MaxTemperature: make([]float64, 0, len(keys)),
	}
	for _, k := range keys {
		f.Dates = append(f.Dates, k)
		f.MinTemperature = append(f.MinTemperature, byDay[k].min)
		f.MaxTemperature = append(f.MaxTemperature, byDay[k].max)
	}
	return f
}
