package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/i474232898/weather-report/internal/log"
	"github.com/i474232898/weather-report/internal/weather"
)

type AppConfig struct {
	// Fixed report location.
	Latitude  float64 `mapstructure:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `mapstructure:"longitude" validate:"gte=-180,lte=180"`
	City      string  `mapstructure:"city" validate:"required"`

	// Report period. TrailingDays > 0 replaces StartDate/EndDate with the last
	// N days available in the archive, ArchiveLagDays before today.
	StartDate      string `mapstructure:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate        string `mapstructure:"end_date" validate:"required,datetime=2006-01-02"`
	TrailingDays   int    `mapstructure:"trailing_days" validate:"gte=0,lte=366"`
	ArchiveLagDays int    `mapstructure:"archive_lag_days" validate:"gte=0"`

	// Upstream source: "openmeteo" (archive API) or "weatherapi" (history API).
	DataSource    string `mapstructure:"data_source" validate:"oneof=openmeteo weatherapi"`
	ArchiveURL    string `mapstructure:"archive_url" validate:"required,url"`
	WeatherAPIURL string `mapstructure:"weatherapi_url" validate:"required,url"`
	WeatherAPIKey string `mapstructure:"weatherapi_api_key" validate:"required_if=DataSource weatherapi"`

	HTTPTimeout     time.Duration `mapstructure:"http_timeout" validate:"gt=0"`
	FetchMaxRetries int           `mapstructure:"fetch_max_retries" validate:"gte=0,lte=10"`

	// Output files. An empty path disables that output.
	OutputJSON  string `mapstructure:"output_json"`
	OutputChart string `mapstructure:"output_chart"`

	// Serve mode.
	Port            string        `mapstructure:"port" validate:"required,numeric"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval" validate:"gte=0"`

	// In-memory report history retention.
	StoreMaxHistory int           `mapstructure:"store_max_history" validate:"gte=0"` // 0 = unlimited
	StoreMaxAge     time.Duration `mapstructure:"store_max_age" validate:"gte=0"`     // 0 = unlimited

	Debug bool `mapstructure:"debug"`
}

var defaults = map[string]interface{}{
	"latitude":           48.85,
	"longitude":          2.35,
	"city":               "Paris",
	"start_date":         "2025-06-24",
	"end_date":           "2025-06-30",
	"trailing_days":      0,
	"archive_lag_days":   5,
	"data_source":        "openmeteo",
	"archive_url":        "https://archive-api.open-meteo.com/v1/archive",
	"weatherapi_url":     "https://api.weatherapi.com/v1/history.json",
	"weatherapi_api_key": "",
	"http_timeout":       "15s",
	"fetch_max_retries":  0,
	"output_json":        "meteo.json",
	"output_chart":       "temperatures_paris.png",
	"port":               "8080",
	"refresh_interval":   "24h",
	"store_max_history":  30,
	"store_max_age":      "0s",
	"debug":              false,
}

var validate = validator.New()

// Load reads configuration from an optional file, the environment (including
// a .env file) and built-in defaults, in increasing order of precedence for
// the environment.
func Load(path string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if _, err := weather.ParseDateRange(cfg.StartDate, cfg.EndDate); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Location returns the configured report location.
func (c *AppConfig) Location() weather.Location {
	return weather.Location{
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		City:      c.City,
	}
}

// ReportRange returns the period to report on at time now.
func (c *AppConfig) ReportRange(now time.Time) (weather.DateRange, error) {
	if c.TrailingDays <= 0 {
		return weather.ParseDateRange(c.StartDate, c.EndDate)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := today.AddDate(0, 0, -c.ArchiveLagDays)
	start := end.AddDate(0, 0, -(c.TrailingDays - 1))
	return weather.DateRange{Start: start, End: end}, nil
}
