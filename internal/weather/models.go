package weather

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date layout used for day keys and API parameters.
const DateLayout = "2006-01-02"

// Location is the fixed place a report is generated for.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"ville"`
}

// Key returns a canonical string key for this location.
func (l Location) Key() string {
	return fmt.Sprintf("%s:%.2f,%.2f", l.City, l.Latitude, l.Longitude)
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange builds a DateRange from two YYYY-MM-DD strings.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	r := DateRange{Start: s, End: e}
	return r, r.Validate()
}

// Validate checks that the range is not inverted.
func (r DateRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return fmt.Errorf("date range requires both start and end")
	}
	if r.End.Before(r.Start) {
		return fmt.Errorf("end date %s is before start date %s", r.End.Format(DateLayout), r.Start.Format(DateLayout))
	}
	return nil
}

func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}

// DayStats summarizes the samples of one calendar day.
type DayStats struct {
	Date  string  `json:"date"`
	Mean  float64 `json:"temperature_moyenne"`
	Min   float64 `json:"temperature_min"`
	Max   float64 `json:"temperature_max"`
	Count int     `json:"nombre_mesures"`
}

// PeriodStats summarizes every raw sample of the report, regardless of day.
type PeriodStats struct {
	Mean      float64 `json:"temperature_moyenne_totale"`
	Min       float64 `json:"temperature_min_totale"`
	Max       float64 `json:"temperature_max_totale"`
	DayCount  int     `json:"nombre_jours"`
	FirstDate string  `json:"date_debut"`
	LastDate  string  `json:"date_fin"`
}

// Report is the output of the daily aggregation.
// Days are ordered by ascending date.
type Report struct {
	Days   []DayStats  `json:"jours"`
	Period PeriodStats `json:"periode"`
}

// Run records one execution of the report pipeline.
type Run struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generatedAt"` // always UTC
	Location    Location  `json:"location"`
	Range       DateRange `json:"-"`
	Source      string    `json:"source"`
	Report      Report    `json:"report"`
}
