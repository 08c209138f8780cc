package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-report/internal/log"
)

// Service fetches hourly data for the configured location, aggregates it and
// records each run in the store.
type Service struct {
	source   DataSource
	store    Store
	location Location
	now      func() time.Time
}

// NewService creates a new Service.
func NewService(source DataSource, store Store, location Location) *Service {
	return &Service{
		source:   source,
		store:    store,
		location: location,
		now:      time.Now,
	}
}

// Location returns the location reports are generated for.
func (s *Service) Location() Location {
	return s.location
}

// Generate runs the fetch and aggregation for rng and stores the result.
// Nothing is stored when any step fails.
func (s *Service) Generate(ctx context.Context, rng DateRange) (Run, error) {
	if err := rng.Validate(); err != nil {
		return Run{}, err
	}
	if s.source == nil {
		return Run{}, fmt.Errorf("no weather data source configured")
	}

	log.Debugw("fetching hourly temperatures", "source", s.source.Name(), "location", s.location.Key(), "range", rng.String())

	payload, err := s.source.FetchHourly(ctx, s.location, rng)
	if err != nil {
		return Run{}, fmt.Errorf("fetch from %s: %w", s.source.Name(), err)
	}

	if payload.Hourly != nil {
		nulls := 0
		for _, v := range payload.Hourly.Temperature2m {
			if v == nil {
				nulls++
			}
		}
		if nulls > 0 {
			log.Warnw("archive returned hours without measurement", "count", nulls, "range", rng.String())
		}
	}

	report, err := AggregatePayload(payload)
	if err != nil {
		return Run{}, fmt.Errorf("aggregate %s: %w", rng.String(), err)
	}

	run := Run{
		ID:          uuid.NewString(),
		GeneratedAt: s.now().UTC(),
		Location:    s.location,
		Range:       rng,
		Source:      s.source.Name(),
		Report:      report,
	}
	s.store.Save(run)

	log.Infow("report generated", "id", run.ID, "days", report.Period.DayCount, "mean", report.Period.Mean)
	return run, nil
}

// Get delegates to the underlying store.
func (s *Service) Get(id string) (Run, error) {
	return s.store.Get(id)
}

// Latest delegates to the underlying store.
func (s *Service) Latest() (Run, error) {
	return s.store.Latest()
}

// Range delegates to the underlying store.
func (s *Service) Range(from, to time.Time) ([]Run, error) {
	return s.store.Range(from, to)
}
