package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-report/internal/log"
	"github.com/i474232898/weather-report/internal/weather"
)

// runTimeout bounds a single scheduled report generation.
const runTimeout = 60 * time.Second

// Generator produces a report run for a date range.
type Generator interface {
	Generate(ctx context.Context, rng weather.DateRange) (weather.Run, error)
}

// Publisher sends a generated run to its sinks.
type Publisher interface {
	Publish(run weather.Run) error
}

// Scheduler periodically regenerates and publishes the report.
type Scheduler struct {
	scheduler *gocron.Scheduler
	generator Generator
	publisher Publisher
	rangeFor  func(now time.Time) (weather.DateRange, error)
	interval  time.Duration
}

// New creates a new Scheduler. rangeFor resolves the report period at run time.
func New(interval time.Duration, generator Generator, publisher Publisher, rangeFor func(time.Time) (weather.DateRange, error)) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		generator: generator,
		publisher: publisher,
		rangeFor:  rangeFor,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// A non-positive interval disables scheduling.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Infof("scheduler: refresh disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.RunOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.Infow("scheduler: started", "interval", s.interval)
	return nil
}

// RunOnce generates and publishes one report. Failures are logged.
func (s *Scheduler) RunOnce() {
	rng, err := s.rangeFor(time.Now())
	if err != nil {
		log.Errorw("scheduler: cannot resolve report range", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	run, err := s.generator.Generate(ctx, rng)
	if err != nil {
		log.Errorw("scheduler: report generation failed", "range", rng.String(), "error", err)
		return
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(run); err != nil {
			log.Errorw("scheduler: publish failed", "id", run.ID, "error", err)
			return
		}
	}
	log.Infow("scheduler: report refreshed", "id", run.ID, "range", rng.String())
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
