package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/i474232898/weather-search/internal/common"
	"github.com/i474232898/weather-search/internal/weather"
)

const (
	defaultWeatherAPIBaseURL = "https://api.weatherapi.com/v1"

	// weatherAPIForecastDays covers today plus the five days shown.
	weatherAPIForecastDays = weather.MaxForecastDays + 1
)

// WeatherAPIConfig holds the WeatherAPI.com access settings.
type WeatherAPIConfig struct {
	APIKey  string
	BaseURL string
	Lang    string
}

// WeatherAPIProvider implements the weather.Provider interface for WeatherAPI.com.
// Its forecast is hourly rather than 3-hourly; day bucketing is unaffected.
type WeatherAPIProvider struct {
	name    string
	cfg     WeatherAPIConfig
	httpCfg HTTPClientConfig
}

func NewWeatherAPIProvider(httpCfg HTTPClientConfig, cfg WeatherAPIConfig) *WeatherAPIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultWeatherAPIBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if httpCfg.Client == nil {
		httpCfg.Client = http.DefaultClient
	}

	return &WeatherAPIProvider{
		name:    "weatherapi",
		cfg:     cfg,
		httpCfg: httpCfg,
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

type waLocation struct {
	Name           string `json:"name"`
	Country        string `json:"country"`
	Localtime      string `json:"localtime"`
	LocaltimeEpoch int64  `json:"localtime_epoch"`
}

// waReading is shared by "current" and each forecast hour.
type waReading struct {
	TimeEpoch  int64   `json:"time_epoch"`
	TempC      float64 `json:"temp_c"`
	FeelsLikeC float64 `json:"feelslike_c"`
	Humidity   int     `json:"humidity"`
	PressureMb float64 `json:"pressure_mb"`
	VisKm      float64 `json:"vis_km"`
	WindKph    float64 `json:"wind_kph"`
	Condition  struct {
		Text string `json:"text"`
	} `json:"condition"`
}

type waCurrent struct {
	Location waLocation `json:"location"`
	Current  waReading  `json:"current"`
	Forecast struct {
		Forecastday []struct {
			Day struct {
				MaxTempC float64 `json:"maxtemp_c"`
				MinTempC float64 `json:"mintemp_c"`
			} `json:"day"`
			Hour []waReading `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

type waSearchHit struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// FindPlaces calls /search.json, the provider's autocomplete endpoint.
func (p *WeatherAPIProvider) FindPlaces(ctx context.Context, query string, limit int) ([]weather.Place, error) {
	var hits []waSearchHit
	if err := getJSON(ctx, p.httpCfg, "find", p.endpoint("search.json", p.baseValues(query)), &hits); err != nil {
		return nil, err
	}

	places := make([]weather.Place, 0, limit)
	for _, h := range hits {
		if len(places) >= limit {
			break
		}
		places = append(places, weather.Place{Name: h.Name, Country: h.Country})
	}
	return places, nil
}

// CurrentConditions calls /current.json for the place.
func (p *WeatherAPIProvider) CurrentConditions(ctx context.Context, place string) (weather.Conditions, error) {
	var payload waCurrent
	if err := getJSON(ctx, p.httpCfg, "weather", p.endpoint("current.json", p.baseValues(place)), &payload); err != nil {
		return weather.Conditions{}, err
	}

	c := toWeatherAPIConditions(weather.Place{Name: payload.Location.Name, Country: payload.Location.Country}, payload.Current)
	c.TempMin = payload.Current.TempC
	c.TempMax = payload.Current.TempC
	return c, nil
}

// Forecast calls /forecast.json and flattens the hourly readings into one series.
func (p *WeatherAPIProvider) Forecast(ctx context.Context, place string) (weather.ForecastSeries, error) {
	values := p.baseValues(place)
	values.Set("days", fmt.Sprint(weatherAPIForecastDays))
	values.Set("aqi", "no")
	values.Set("alerts", "no")

	var payload waCurrent
	if err := getJSON(ctx, p.httpCfg, "forecast", p.endpoint("forecast.json", values), &payload); err != nil {
		return weather.ForecastSeries{}, err
	}

	series := weather.ForecastSeries{
		Place:          weather.Place{Name: payload.Location.Name, Country: payload.Location.Country},
		TimezoneOffset: utcOffset(payload.Location.Localtime, payload.Location.LocaltimeEpoch),
		Samples:        []weather.Sample{},
	}
	for _, day := range payload.Forecast.Forecastday {
		for _, hour := range day.Hour {
			c := toWeatherAPIConditions(series.Place, hour)
			c.TempMin = day.Day.MinTempC
			c.TempMax = day.Day.MaxTempC
			series.Samples = append(series.Samples, weather.Sample{Conditions: c, Timestamp: hour.TimeEpoch})
		}
	}
	return series, nil
}

func (p *WeatherAPIProvider) baseValues(place string) url.Values {
	values := url.Values{}
	values.Set("key", p.cfg.APIKey)
	values.Set("q", common.PlaceQuery(place))
	if p.cfg.Lang != "" {
		values.Set("lang", p.cfg.Lang)
	}
	return values
}

func (p *WeatherAPIProvider) endpoint(path string, values url.Values) string {
	return fmt.Sprintf("%s/%s?%s", p.cfg.BaseURL, path, values.Encode())
}

// utcOffset derives the place's UTC offset in seconds from its wall-clock
// "localtime" and the matching epoch. Unparseable input yields 0.
func utcOffset(localtime string, epoch int64) int {
	if localtime == "" || epoch == 0 {
		return 0
	}
	wall, err := time.Parse("2006-01-02 15:04", localtime)
	if err != nil {
		return 0
	}
	offset := wall.Unix() - epoch
	// localtime has minute precision; the epoch does not.
	return int((time.Duration(offset) * time.Second).Round(15 * time.Minute).Seconds())
}

func toWeatherAPIConditions(place weather.Place, r waReading) weather.Conditions {
	return weather.Conditions{
		Place:       place,
		Temperature: r.TempC,
		FeelsLike:   r.FeelsLikeC,
		Humidity:    r.Humidity,
		Pressure:    int(r.PressureMb),
		Visibility:  int(r.VisKm * 1000),
		WindSpeed:   r.WindKph / 3.6,
		Condition:   mapWeatherAPICondition(r.Condition.Text),
		Description: strings.ToLower(r.Condition.Text),
	}
}

func mapWeatherAPICondition(text string) weather.Condition {
	switch {
	case text == "":
		return weather.ConditionOther
	case common.ContainsFold(text, "thunder"):
		return weather.ConditionOther
	case common.ContainsFold(text, "snow") || common.ContainsFold(text, "sleet") || common.ContainsFold(text, "blizzard"):
		return weather.ConditionSnow
	case common.ContainsFold(text, "rain") || common.ContainsFold(text, "shower") || common.ContainsFold(text, "drizzle"):
		return weather.ConditionRain
	case common.ContainsFold(text, "cloud") || common.ContainsFold(text, "overcast"):
		return weather.ConditionClouds
	case common.ContainsFold(text, "sunny") || common.ContainsFold(text, "clear"):
		return weather.ConditionClear
	default:
		return weather.ConditionOther
	}
}
