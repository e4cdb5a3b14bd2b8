package weather

import (
	"context"
)

// Source abstracts a daily forecast provider (e.g. Open-Meteo).
type Source interface {
	Name() string
	FetchDaily(ctx context.Context, loc Location, days int) (Forecast, error)
}
