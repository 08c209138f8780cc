package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 48.85, cfg.Latitude)
	assert.Equal(t, 2.35, cfg.Longitude)
	assert.Equal(t, "Paris", cfg.City)
	assert.Equal(t, "2025-06-24", cfg.StartDate)
	assert.Equal(t, "2025-06-30", cfg.EndDate)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 0, cfg.FetchMaxRetries)
	assert.Equal(t, "meteo.json", cfg.OutputJSON)
	assert.Equal(t, 24*time.Hour, cfg.RefreshInterval)
	assert.Equal(t, "openmeteo", cfg.DataSource)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("START_DATE", "2025-07-01")
	t.Setenv("END_DATE", "2025-07-03")
	t.Setenv("FETCH_MAX_RETRIES", "2")
	t.Setenv("HTTP_TIMEOUT", "3s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "2025-07-01", cfg.StartDate)
	assert.Equal(t, "2025-07-03", cfg.EndDate)
	assert.Equal(t, 2, cfg.FetchMaxRetries)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weather.yaml")
	content := `city: "Lyon"
latitude: 45.76
longitude: 4.84
output_chart: ""`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Lyon", cfg.City)
	assert.Equal(t, 45.76, cfg.Latitude)
	assert.Equal(t, "", cfg.OutputChart)
	assert.Equal(t, "Lyon", cfg.Location().City)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("bad date", func(t *testing.T) {
		t.Setenv("START_DATE", "24/06/2025")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("inverted range", func(t *testing.T) {
		t.Setenv("START_DATE", "2025-06-30")
		t.Setenv("END_DATE", "2025-06-24")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("latitude out of range", func(t *testing.T) {
		t.Setenv("LATITUDE", "123")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("unknown data source", func(t *testing.T) {
		t.Setenv("DATA_SOURCE", "meteofrance")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("weatherapi without key", func(t *testing.T) {
		t.Setenv("DATA_SOURCE", "weatherapi")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestLoad_WeatherAPISource(t *testing.T) {
	t.Setenv("DATA_SOURCE", "weatherapi")
	t.Setenv("WEATHERAPI_API_KEY", "secret")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "weatherapi", cfg.DataSource)
	assert.Equal(t, "secret", cfg.WeatherAPIKey)
}

func TestReportRange(t *testing.T) {
	cfg := &AppConfig{StartDate: "2025-06-24", EndDate: "2025-06-30"}
	r, err := cfg.ReportRange(time.Now())
	require.NoError(t, err)
	assert.Equal(t, "2025-06-24..2025-06-30", r.String())

	cfg.TrailingDays = 7
	cfg.ArchiveLagDays = 5
	r, err = cfg.ReportRange(time.Date(2025, 7, 10, 15, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2025-06-29..2025-07-05", r.String())
}
