package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-report/internal/report"
	"github.com/i474232898/weather-report/internal/weather"
)

type stubSource struct {
	payload weather.HourlyPayload
	got     weather.DateRange
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) FetchHourly(_ context.Context, _ weather.Location, rng weather.DateRange) (weather.HourlyPayload, error) {
	s.got = rng
	return s.payload, nil
}

func f64(v float64) *float64 { return &v }

func TestReportCommand(t *testing.T) {
	dir := t.TempDir()
	src := &stubSource{payload: weather.HourlyPayload{Hourly: &weather.HourlySeries{
		Time:          []string{"2025-06-24T00:00", "2025-06-24T12:00", "2025-06-25T00:00"},
		Temperature2m: []*float64{f64(15), f64(25), f64(18)},
	}}}

	var out bytes.Buffer
	jsonPath := filepath.Join(dir, "meteo.json")
	chartPath := filepath.Join(dir, "chart.png")
	err := New(Options{Output: &out, Source: src}).Execute([]string{
		"report", "--start", "2025-06-24", "--end", "2025-06-25", "--json", jsonPath, "--chart", chartPath,
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-06-24..2025-06-25", src.got.String())
	assert.Contains(t, out.String(), "ANALYSE MÉTÉO PARIS")
	assert.Contains(t, out.String(), jsonPath)

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	doc, err := report.DecodeDocument(data)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Results.Period.DayCount)
	assert.FileExists(t, chartPath)
}

func TestReportCommand_NoOutputOnMissingData(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "meteo.json")

	err := New(Options{Output: &bytes.Buffer{}, Source: &stubSource{}}).Execute([]string{
		"--json", jsonPath, "--no-chart",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, weather.ErrMissingData)
	assert.NoFileExists(t, jsonPath)
}

func TestReportCommand_HalfRange(t *testing.T) {
	err := New(Options{Output: &bytes.Buffer{}, Source: &stubSource{}}).Execute([]string{"report", "--start", "2025-06-24"})
	assert.Error(t, err)
}

func TestExerciseCommands(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, New(Options{Output: &out}).Execute([]string{"exercise", "minutes", "90", "-30"}))
	assert.Equal(t, "1 heure(s) et 30 minute(s)\n-1 heure(s) et 30 minute(s)\n", out.String())

	out.Reset()
	require.NoError(t, New(Options{Output: &out}).Execute([]string{"exercise", "parity", "2", "-3"}))
	assert.Equal(t, "2: true\n-3: false\n", out.String())

	assert.Error(t, New(Options{Output: &out}).Execute([]string{"exercise", "parity", "two"}))
}
