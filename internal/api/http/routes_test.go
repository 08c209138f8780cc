package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-report/internal/report"
	"github.com/i474232898/weather-report/internal/store"
	"github.com/i474232898/weather-report/internal/weather"
)

type fakeSource struct {
	payload weather.HourlyPayload
	err     error
	calls   []weather.DateRange
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) FetchHourly(_ context.Context, _ weather.Location, rng weather.DateRange) (weather.HourlyPayload, error) {
	f.calls = append(f.calls, rng)
	return f.payload, f.err
}

func f64(v float64) *float64 { return &v }

func twoDayPayload() weather.HourlyPayload {
	return weather.HourlyPayload{Hourly: &weather.HourlySeries{
		Time: []string{
			"2025-06-24T00:00", "2025-06-24T12:00", "2025-06-24T23:00",
			"2025-06-25T00:00", "2025-06-25T12:00", "2025-06-25T23:00",
		},
		Temperature2m: []*float64{f64(15), f64(25), f64(20), f64(18), f64(30), f64(22)},
	}}
}

func defaultRange(time.Time) (weather.DateRange, error) {
	return weather.ParseDateRange("2025-06-24", "2025-06-30")
}

func newTestApp(src *fakeSource) *fiber.App {
	svc := weather.NewService(src, store.NewMemoryStore(10, 0), weather.Location{Latitude: 48.85, Longitude: 2.35, City: "Paris"})
	return NewApp(svc, defaultRange)
}

func do(t *testing.T, app *fiber.App, method, target string) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, target, nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestHealth(t *testing.T) {
	resp, _ := do(t, newTestApp(&fakeSource{}), http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGenerateAndFetchReport(t *testing.T) {
	src := &fakeSource{payload: twoDayPayload()}
	app := newTestApp(src)

	resp, body := do(t, app, http.MethodPost, "/api/v1/reports?start_date=2025-06-24&end_date=2025-06-25")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	doc, err := report.DecodeDocument(body)
	require.NoError(t, err)
	assert.Equal(t, "Paris", doc.Location.City)
	require.Len(t, doc.Results.Days, 2)
	assert.Equal(t, 23.3, doc.Results.Days[1].Mean)
	require.Len(t, src.calls, 1)
	assert.Equal(t, "2025-06-24..2025-06-25", src.calls[0].String())

	location := resp.Header.Get("Location")
	require.NotEmpty(t, location)

	resp, body = do(t, app, http.MethodGet, location)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	byID, err := report.DecodeDocument(body)
	require.NoError(t, err)
	assert.Equal(t, doc, byID)

	resp, _ = do(t, app, http.MethodGet, "/api/v1/reports/latest")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGenerateUsesDefaultRange(t *testing.T) {
	src := &fakeSource{payload: twoDayPayload()}
	resp, _ := do(t, newTestApp(src), http.MethodPost, "/api/v1/reports")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, src.calls, 1)
	assert.Equal(t, "2025-06-24..2025-06-30", src.calls[0].String())
}

func TestGenerateErrors(t *testing.T) {
	cases := []struct {
		name   string
		src    *fakeSource
		target string
		status int
	}{
		{"half range", &fakeSource{}, "/api/v1/reports?start_date=2025-06-24", http.StatusBadRequest},
		{"bad date", &fakeSource{}, "/api/v1/reports?start_date=24-06-2025&end_date=2025-06-25", http.StatusBadRequest},
		{"inverted range", &fakeSource{}, "/api/v1/reports?start_date=2025-06-25&end_date=2025-06-24", http.StatusBadRequest},
		{"missing data", &fakeSource{payload: weather.HourlyPayload{}}, "/api/v1/reports", http.StatusUnprocessableEntity},
		{"upstream", &fakeSource{err: errors.New("connection refused")}, "/api/v1/reports", http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := do(t, newTestApp(tc.src), http.MethodPost, tc.target)
			assert.Equal(t, tc.status, resp.StatusCode, string(body))
		})
	}
}

func TestReportLookups(t *testing.T) {
	app := newTestApp(&fakeSource{})

	resp, _ := do(t, app, http.MethodGet, "/api/v1/reports/latest")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/api/v1/reports/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/api/v1/reports/6f1c1b7e-1a2b-4c3d-8e9f-001122334455")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReportHistory(t *testing.T) {
	app := newTestApp(&fakeSource{payload: twoDayPayload()})

	resp, _ := do(t, app, http.MethodGet, "/api/v1/reports?from=2025-01-01T00:00:00Z")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/api/v1/reports?from=2025-01-02T00:00:00Z&to=2025-01-01T00:00:00Z")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPost, "/api/v1/reports")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := do(t, app, http.MethodGet, "/api/v1/reports?from=0&to=4102444800")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Reports []runSummary `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out.Reports, 1)
	assert.Equal(t, 2, out.Reports[0].Days)
	assert.Equal(t, "2025-06-24", out.Reports[0].StartDate)
}

func TestExerciseRoutes(t *testing.T) {
	app := newTestApp(&fakeSource{})

	resp, body := do(t, app, http.MethodGet, "/api/v1/exercise/parity?n=-3")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"n": -3, "even": false}`, string(body))

	resp, _ = do(t, app, http.MethodGet, "/api/v1/exercise/parity?n=abc")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = do(t, app, http.MethodGet, "/api/v1/exercise/minutes?m=90&m=-30")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"minutes": [90, -30], "conversions": ["1 heure(s) et 30 minute(s)", "-1 heure(s) et 30 minute(s)"]}`, string(body))

	resp, _ = do(t, app, http.MethodGet, "/api/v1/exercise/minutes")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
