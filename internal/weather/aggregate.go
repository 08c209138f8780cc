package weather

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// dateTimeSep separates the date from the time of day in archive timestamps.
const dateTimeSep = "T"

// AggregatePayload validates an archive payload and aggregates its hourly
// temperatures by calendar day.
//
// Null temperatures are dropped before aggregation, so the report's dates are
// the distinct dates of the non-null samples: a day whose values are all null
// does not appear in the report.
func AggregatePayload(p HourlyPayload) (Report, error) {
	if p.Hourly == nil {
		return Report{}, &MissingDataError{Reason: `payload has no "hourly" section`}
	}
	if p.Hourly.Temperature2m == nil {
		return Report{}, &MissingDataError{Reason: `payload has no "temperature_2m" series`}
	}
	if len(p.Hourly.Time) == 0 || len(p.Hourly.Temperature2m) == 0 {
		return Report{}, &MissingDataError{Reason: "no temperature samples"}
	}
	if len(p.Hourly.Time) != len(p.Hourly.Temperature2m) {
		return Report{}, &ValidationError{
			Index:  -1,
			Reason: fmt.Sprintf("%d timestamps for %d temperatures", len(p.Hourly.Time), len(p.Hourly.Temperature2m)),
		}
	}

	// Null temperatures are hours without a measurement, not samples.
	timestamps := make([]string, 0, len(p.Hourly.Time))
	values := make([]float64, 0, len(p.Hourly.Temperature2m))
	for i, v := range p.Hourly.Temperature2m {
		if v == nil {
			continue
		}
		timestamps = append(timestamps, p.Hourly.Time[i])
		values = append(values, *v)
	}

	return Aggregate(timestamps, values)
}

// Aggregate groups parallel timestamp / value samples by calendar day and
// computes per-day and whole-period statistics.
//
// Period statistics are computed over every raw value, not over the daily
// results. Rounding to one decimal happens only on emitted statistics.
func Aggregate(timestamps []string, values []float64) (Report, error) {
	if len(timestamps) == 0 || len(values) == 0 {
		return Report{}, &MissingDataError{Reason: "no temperature samples"}
	}
	if len(timestamps) != len(values) {
		return Report{}, &ValidationError{
			Index:  -1,
			Reason: fmt.Sprintf("%d timestamps for %d values", len(timestamps), len(values)),
		}
	}

	buckets := make(map[string][]float64)
	for i, ts := range timestamps {
		date, err := sampleDate(i, ts)
		if err != nil {
			return Report{}, err
		}
		buckets[date] = append(buckets[date], values[i])
	}

	dates := make([]string, 0, len(buckets))
	for d := range buckets {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	days := make([]DayStats, 0, len(dates))
	all := make([]float64, 0, len(values))
	for _, d := range dates {
		v := buckets[d]
		days = append(days, DayStats{
			Date:  d,
			Mean:  round1(stat.Mean(v, nil)),
			Min:   round1(floats.Min(v)),
			Max:   round1(floats.Max(v)),
			Count: len(v),
		})
		all = append(all, v...)
	}

	return Report{
		Days: days,
		Period: PeriodStats{
			Mean:      round1(stat.Mean(all, nil)),
			Min:       round1(floats.Min(all)),
			Max:       round1(floats.Max(all)),
			DayCount:  len(days),
			FirstDate: days[0].Date,
			LastDate:  days[len(days)-1].Date,
		},
	}, nil
}

func sampleDate(i int, ts string) (string, error) {
	date, _, ok := strings.Cut(ts, dateTimeSep)
	if !ok {
		return "", &ValidationError{Index: i, Value: ts, Reason: "missing date/time separator " + strconv.Quote(dateTimeSep)}
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return "", &ValidationError{Index: i, Value: ts, Reason: "date part is not YYYY-MM-DD"}
	}
	return date, nil
}

// round1 rounds to one decimal, half to even on the exact binary value.
func round1(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return r
}
