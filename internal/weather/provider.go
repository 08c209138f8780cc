package weather

import (
	"context"
	"time"
)

// HourlyPayload is the subset of an archive response the aggregation reads.
// Hourly is nil when the "hourly" key is absent.
type HourlyPayload struct {
	Hourly *HourlySeries `json:"hourly"`
}

// HourlySeries holds the parallel time / temperature arrays. A nil element in
// Temperature2m is an hour the archive has no measurement for.
type HourlySeries struct {
	Time          []string   `json:"time"`
	Temperature2m []*float64 `json:"temperature_2m"`
}

// DataSource abstracts the upstream hourly temperature archive.
type DataSource interface {
	Name() string
	FetchHourly(ctx context.Context, loc Location, rng DateRange) (HourlyPayload, error)
}

// Store is the contract the in-memory report history must satisfy.
type Store interface {
	Save(run Run)
	Get(id string) (Run, error)
	Latest() (Run, error)
	Range(from, to time.Time) ([]Run, error)
}
