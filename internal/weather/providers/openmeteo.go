package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-report/internal/weather"
)

// DefaultArchiveURL is the Open-Meteo historical weather endpoint.
const DefaultArchiveURL = "https://archive-api.open-meteo.com/v1/archive"

// OpenMeteoArchiveProvider implements weather.DataSource against the
// Open-Meteo archive API.
type OpenMeteoArchiveProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewOpenMeteoArchiveProvider creates an archive client. An empty baseURL
// selects DefaultArchiveURL.
func NewOpenMeteoArchiveProvider(client *http.Client, baseURL string, maxRetries int) *OpenMeteoArchiveProvider {
	if baseURL == "" {
		baseURL = DefaultArchiveURL
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo-archive",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenMeteoArchiveProvider{
		name:    "openmeteo-archive",
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      maxRetries,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

func (p *OpenMeteoArchiveProvider) Name() string {
	return p.name
}

// FetchHourly returns the hourly temperature_2m series for loc over rng.
// Key presence is not checked here; weather.AggregatePayload does that.
func (p *OpenMeteoArchiveProvider) FetchHourly(ctx context.Context, loc weather.Location, rng weather.DateRange) (weather.HourlyPayload, error) {
	if err := rng.Validate(); err != nil {
		return weather.HourlyPayload{}, err
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
		values.Set("start_date", rng.Start.Format(weather.DateLayout))
		values.Set("end_date", rng.End.Format(weather.DateLayout))
		values.Set("hourly", "temperature_2m")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.HourlyPayload{}, err
	}
	defer resp.Body.Close()

	var payload weather.HourlyPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.HourlyPayload{}, fmt.Errorf("decode archive response: %w", err)
	}
	return payload, nil
}
