package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-report/internal/weather"
)

// DefaultWeatherAPIHistoryURL is the WeatherAPI.com history endpoint.
const DefaultWeatherAPIHistoryURL = "https://api.weatherapi.com/v1/history.json"

// WeatherAPIHistoryProvider implements weather.DataSource for WeatherAPI.com.
// The history endpoint returns one day per request, so a range is fetched day
// by day and merged into a single hourly series.
type WeatherAPIHistoryProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIHistoryProvider(client *http.Client, baseURL, apiKey string, maxRetries int) *WeatherAPIHistoryProvider {
	if baseURL == "" {
		baseURL = DefaultWeatherAPIHistoryURL
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weatherapi-history",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &WeatherAPIHistoryProvider{
		name:    "weatherapi-history",
		apiKey:  apiKey,
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

func (p *WeatherAPIHistoryProvider) Name() string {
	return p.name
}

type weatherAPIHistory struct {
	Forecast struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Hour []struct {
				Time  string   `json:"time"` // "2025-06-24 13:00"
				TempC *float64 `json:"temp_c"`
			} `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

func (p *WeatherAPIHistoryProvider) FetchHourly(ctx context.Context, loc weather.Location, rng weather.DateRange) (weather.HourlyPayload, error) {
	if p.apiKey == "" {
		return weather.HourlyPayload{}, fmt.Errorf("weatherapi api key is not configured")
	}
	if err := rng.Validate(); err != nil {
		return weather.HourlyPayload{}, err
	}

	series := &weather.HourlySeries{
		Time:          []string{},
		Temperature2m: []*float64{},
	}

	for day := rng.Start; !day.After(rng.End); day = day.AddDate(0, 0, 1) {
		dt := day.Format(weather.DateLayout)

		buildRequest := func() (*http.Request, error) {
			values := url.Values{}
			values.Set("key", p.apiKey)
			// WeatherAPI uses "q" for location; it accepts "lat,lon".
			values.Set("q", fmt.Sprintf("%f,%f", loc.Latitude, loc.Longitude))
			values.Set("dt", dt)

			u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
			return http.NewRequest(http.MethodGet, u, nil)
		}

		resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
		if err != nil {
			return weather.HourlyPayload{}, fmt.Errorf("history %s: %w", dt, err)
		}

		var payload weatherAPIHistory
		err = json.NewDecoder(resp.Body).Decode(&payload)
		resp.Body.Close()
		if err != nil {
			return weather.HourlyPayload{}, fmt.Errorf("decode history %s: %w", dt, err)
		}

		for _, fd := range payload.Forecast.ForecastDay {
			for _, h := range fd.Hour {
				// Normalize "YYYY-MM-DD HH:MM" to the ISO form the aggregation expects.
				series.Time = append(series.Time, strings.Replace(h.Time, " ", "T", 1))
				series.Temperature2m = append(series.Temperature2m, h.TempC)
			}
		}
	}

	return weather.HourlyPayload{Hourly: series}, nil
}
