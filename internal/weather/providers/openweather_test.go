package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-search/internal/weather"
)

const currentLondon = `{
	"name": "London",
	"sys": {"country": "GB"},
	"main": {"temp": 12.4, "temp_min": 10.1, "temp_max": 14.9, "feels_like": 11.0, "humidity": 81, "pressure": 1012},
	"weather": [{"main": "Clouds", "description": "broken clouds"}],
	"wind": {"speed": 4.1},
	"visibility": 10000,
	"cod": 200
}`

const forecastLondon = `{
	"cod": "200",
	"city": {"name": "London", "country": "GB", "timezone": 3600},
	"list": [
		{"dt": 1741597200, "main": {"temp": 9.5}, "weather": [{"main": "Rain", "description": "light rain"}], "wind": {"speed": 3}, "visibility": 9000},
		{"dt": 1741608000, "main": {"temp": 11.2}, "weather": [{"main": "Snow", "description": "snow"}], "wind": {"speed": 2}, "visibility": 8000}
	]
}`

const findLondon = `{
	"list": [
		{"name": "London", "sys": {"country": "GB"}},
		{"name": "London", "sys": {"country": "CA"}},
		{"name": "Londonderry", "sys": {"country": "GB"}}
	]
}`

func newTestProvider(t *testing.T, handler http.HandlerFunc) (*OpenWeatherProvider, *[]string) {
	t.Helper()

	var observed []string
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p := NewOpenWeatherProvider(HTTPClientConfig{
		Client: srv.Client(),
		Observe: func(op string, _ time.Duration) {
			observed = append(observed, op)
		},
	}, OpenWeatherConfig{APIKey: "secret", BaseURL: srv.URL + "/", Lang: "en"})
	return p, &observed
}

func TestOpenWeatherCurrentConditions(t *testing.T) {
	p, observed := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "London,GB", r.URL.Query().Get("q"))
		assert.Equal(t, "secret", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "en", r.URL.Query().Get("lang"))
		_, _ = w.Write([]byte(currentLondon))
	})

	c, err := p.CurrentConditions(context.Background(), "London, GB")
	require.NoError(t, err)

	assert.Equal(t, weather.Place{Name: "London", Country: "GB"}, c.Place)
	assert.InDelta(t, 12.4, c.Temperature, 0.001)
	assert.InDelta(t, 14.9, c.TempMax, 0.001)
	assert.Equal(t, 81, c.Humidity)
	assert.Equal(t, 1012, c.Pressure)
	assert.Equal(t, 10000, c.Visibility)
	assert.Equal(t, weather.ConditionClouds, c.Condition)
	assert.Equal(t, "broken clouds", c.Description)
	assert.Equal(t, []string{"weather"}, *observed)
}

func TestOpenWeatherNotFound(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	})

	_, err := p.CurrentConditions(context.Background(), "Atlantis")
	require.Error(t, err)
	assert.True(t, errors.Is(err, weather.ErrNotFound))
	assert.Contains(t, err.Error(), "city not found")
}

func TestOpenWeatherServerErrorIsUnavailable(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := p.Forecast(context.Background(), "London")
	require.Error(t, err)
	assert.True(t, errors.Is(err, weather.ErrProviderUnavailable))
	assert.False(t, errors.Is(err, weather.ErrNotFound))
}

func TestOpenWeatherMalformedBodyIsUnavailable(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	_, err := p.CurrentConditions(context.Background(), "London")
	assert.True(t, errors.Is(err, weather.ErrProviderUnavailable))
}

func TestOpenWeatherForecast(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		_, _ = w.Write([]byte(forecastLondon))
	})

	f, err := p.Forecast(context.Background(), "London")
	require.NoError(t, err)

	assert.Equal(t, 3600, f.TimezoneOffset)
	assert.Equal(t, "London, GB", f.Place.Label())
	require.Len(t, f.Samples, 2)
	assert.Equal(t, int64(1741597200), f.Samples[0].Timestamp)
	assert.Equal(t, weather.ConditionRain, f.Samples[0].Condition)
	assert.Equal(t, weather.ConditionSnow, f.Samples[1].Condition)
	assert.Equal(t, "GB", f.Samples[1].Place.Country)
}

func TestOpenWeatherFindPlaces(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/find", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("cnt"))
		assert.Equal(t, "lon", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(findLondon))
	})

	places, err := p.FindPlaces(context.Background(), "lon", 2)
	require.NoError(t, err)
	assert.Equal(t, []weather.Place{
		{Name: "London", Country: "GB"},
		{Name: "London", Country: "CA"},
	}, places)
}

func TestMapOpenWeatherCondition(t *testing.T) {
	assert.Equal(t, weather.ConditionOther, mapOpenWeatherCondition(nil))
	assert.Equal(t, weather.ConditionClear, mapOpenWeatherCondition([]owWeather{{Main: "Clear"}}))
	assert.Equal(t, weather.ConditionOther, mapOpenWeatherCondition([]owWeather{{Main: "Thunderstorm"}}))
}
