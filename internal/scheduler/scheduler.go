package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Refresher is anything that can refresh itself, e.g. *weather.Service.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler periodically refreshes the weather forecast.
type Scheduler struct {
	scheduler *gocron.Scheduler
	target    Refresher
	interval  time.Duration
	timeout   time.Duration
	log       *zap.Logger
}

// New creates a new Scheduler. An interval <= 0 refreshes once on Start only.
func New(target Refresher, interval, timeout time.Duration, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		target:    target,
		interval:  interval,
		timeout:   timeout,
		log:       log.Named("scheduler"),
	}
}

// Start runs the first refresh right away and schedules the rest.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.log.Info("periodic refresh disabled; fetching forecast once")
		go s.run()
		return nil
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.log.Info("forecast refresh scheduled", zap.Duration("interval", s.interval))
	return nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.target.Refresh(ctx); err != nil {
		s.log.Error("forecast refresh failed", zap.Error(err), zap.Duration("took", time.Since(start)))
		return
	}
	s.log.Debug("forecast refresh completed", zap.Duration("took", time.Since(start)))
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
