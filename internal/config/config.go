package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
)

const (
	ProviderOpenWeather = "openweather"
	ProviderWeatherAPI  = "weatherapi"
)

type AppConfig struct {
	// Provider selects the weather backend: "openweather" or "weatherapi".
	Provider string

	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string
	OpenWeatherUnits   string
	OpenWeatherLang    string

	WeatherAPIKey     string
	WeatherAPIBaseURL string
	WeatherAPILang    string

	// HTTPTimeout bounds outbound provider calls (0 = no timeout).
	HTTPTimeout time.Duration

	// DebounceDelay is the quiet period before a suggestion lookup.
	DebounceDelay time.Duration

	// PlacesFile optionally replaces the built-in popular places.
	PlacesFile string

	// RefreshInterval re-runs the displayed search periodically (0 = disabled).
	RefreshInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
// Every invalid variable is reported, not just the first.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}
	var errs *multierror.Error

	cfg.Provider = getenvDefault("WEATHER_PROVIDER", ProviderOpenWeather)

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.OpenWeatherBaseURL = getenvDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5")
	cfg.OpenWeatherUnits = getenvDefault("OPENWEATHER_UNITS", "metric")
	cfg.OpenWeatherLang = getenvDefault("OPENWEATHER_LANG", "en")

	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_KEY")
	cfg.WeatherAPIBaseURL = getenvDefault("WEATHERAPI_BASE_URL", "https://api.weatherapi.com/v1")
	cfg.WeatherAPILang = os.Getenv("WEATHERAPI_LANG")

	switch cfg.Provider {
	case ProviderOpenWeather:
		if cfg.OpenWeatherAPIKey == "" {
			errs = multierror.Append(errs, fmt.Errorf("OPENWEATHER_API_KEY is required"))
		}
	case ProviderWeatherAPI:
		if cfg.WeatherAPIKey == "" {
			errs = multierror.Append(errs, fmt.Errorf("WEATHERAPI_KEY is required"))
		}
	default:
		errs = multierror.Append(errs, fmt.Errorf("unknown WEATHER_PROVIDER %q", cfg.Provider))
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "15s"); err != nil {
		errs = multierror.Append(errs, err)
	}
	if cfg.DebounceDelay, err = getenvDuration("DEBOUNCE_DELAY", "300ms"); err != nil {
		errs = multierror.Append(errs, err)
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "0"); err != nil {
		errs = multierror.Append(errs, err)
	}

	cfg.PlacesFile = os.Getenv("PLACES_FILE")
	cfg.Port = getenvDefault("PORT", "8080")

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return d, nil
}
