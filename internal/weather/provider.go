package weather

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when the provider rejects the place name.
	ErrNotFound = errors.New("place not found")
	// ErrProviderUnavailable is returned for transport failures and
	// non-success responses other than a rejected place.
	ErrProviderUnavailable = errors.New("weather provider unavailable")
)

// Provider abstracts the remote weather data source (e.g. OpenWeatherMap).
// All operations are keyed by a free-text place name.
type Provider interface {
	Name() string
	FindPlaces(ctx context.Context, query string, limit int) ([]Place, error)
	CurrentConditions(ctx context.Context, place string) (Conditions, error)
	Forecast(ctx context.Context, place string) (ForecastSeries, error)
}
