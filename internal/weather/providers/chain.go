package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/i474232898/vending-forecast/internal/weather"
)

// Chain tries each source in order and returns the first usable forecast.
type Chain struct {
	sources []weather.Source
	log     *zap.Logger
}

func NewChain(log *zap.Logger, sources ...weather.Source) *Chain {
	if log == nil {
		log = zap.NewNop()
	}
	return &Chain{sources: sources, log: log.Named("providers")}
}

func (c *Chain) Name() string {
	names := make([]string, 0, len(c.sources))
	for _, s := range c.sources {
		names = append(names, s.Name())
	}
	return strings.Join(names, ">")
}

func (c *Chain) FetchDaily(ctx context.Context, loc weather.Location, days int) (weather.Forecast, error) {
	if len(c.sources) == 0 {
		return weather.Forecast{}, fmt.Errorf("no weather providers configured")
	}

	var errs []error
	for _, s := range c.sources {
		f, err := s.FetchDaily(ctx, loc, days)
		if err == nil && f.Days() == 0 {
			err = fmt.Errorf("empty forecast")
		}
		if err == nil {
			return f, nil
		}

		c.log.Warn("provider forecast failed", zap.String("provider", s.Name()), zap.Error(err))
		errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))

		if ctx.Err() != nil {
			break
		}
	}
	return weather.Forecast{}, errors.Join(errs...)
}
