package weather

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// State is the outcome of the most recent forecast fetch.
type State string

const (
	StatePending State = "pending"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// Status describes the forecast held by a Service.
type Status struct {
	State     State      `json:"status"`
	Error     string     `json:"error,omitempty"`
	FetchedAt *time.Time `json:"fetchedAt,omitempty"`
}

// Service fetches the forecast for one location and keeps the last good copy.
type Service struct {
	source   Source
	location Location
	days     int
	log      *zap.Logger
	now      func() time.Time

	mu        sync.RWMutex
	forecast  *Forecast
	state     State
	lastErr   error
	fetchedAt time.Time
}

// NewService creates a new Service. Nothing is fetched until Refresh.
func NewService(source Source, loc Location, days int, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		source:   source,
		location: loc,
		days:     days,
		log:      log.Named("weather"),
		now:      time.Now,
		state:    StatePending,
	}
}

// Location returns the location forecasts are fetched for.
func (s *Service) Location() Location {
	return s.location
}

// Refresh fetches a new forecast. On failure the previous forecast, if any,
// is kept and the error is recorded in the status.
func (s *Service) Refresh(ctx context.Context) error {
	if s.source == nil {
		err := fmt.Errorf("no weather source configured")
		s.fail(err)
		return err
	}

	s.log.Debug("fetching forecast",
		zap.String("source", s.source.Name()),
		zap.String("location", s.location.Key()),
		zap.Int("days", s.days),
	)

	f, err := s.source.FetchDaily(ctx, s.location, s.days)
	if err == nil {
		err = f.Validate()
	}
	if err != nil {
		err = fmt.Errorf("%s forecast for %s: %w", s.source.Name(), s.location.Key(), err)
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.forecast = &f
	s.state = StateReady
	s.lastErr = nil
	s.fetchedAt = s.now().UTC()
	s.mu.Unlock()

	s.log.Info("forecast updated",
		zap.String("source", s.source.Name()),
		zap.Int("days", len(f.Dates)),
	)
	return nil
}

func (s *Service) fail(err error) {
	s.mu.Lock()
	s.state = StateFailed
	s.lastErr = err
	hasForecast := s.forecast != nil
	s.mu.Unlock()

	s.log.Warn("forecast fetch failed", zap.Error(err), zap.Bool("keeping_last_forecast", hasForecast))
}

// Outlook returns the held forecast, or Absent if none has been fetched.
func (s *Service) Outlook() Outlook {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.forecast == nil {
		return Absent()
	}
	return Present(*s.forecast)
}

// Latest returns the held forecast or ErrNoForecast.
func (s *Service) Latest() (Forecast, error) {
	f, ok := s.Outlook().Forecast()
	if !ok {
		return Forecast{}, ErrNoForecast
	}
	return f, nil
}

// Status reports the state of the most recent fetch.
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{State: s.state}
	if s.lastErr != nil {
		st.Error = s.lastErr.Error()
	}
	if !s.fetchedAt.IsZero() {
		ts := s.fetchedAt
		st.FetchedAt = &ts
	}
	return st
}
