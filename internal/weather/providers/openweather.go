package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/i474232898/weather-search/internal/common"
	"github.com/i474232898/weather-search/internal/weather"
)

const defaultOpenWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherConfig holds the OpenWeatherMap access settings.
type OpenWeatherConfig struct {
	APIKey  string
	BaseURL string
	Units   string
	Lang    string
}

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	cfg     OpenWeatherConfig
	httpCfg HTTPClientConfig
}

func NewOpenWeatherProvider(httpCfg HTTPClientConfig, cfg OpenWeatherConfig) *OpenWeatherProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenWeatherBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Units == "" {
		cfg.Units = "metric"
	}
	if httpCfg.Client == nil {
		httpCfg.Client = http.DefaultClient
	}

	return &OpenWeatherProvider{
		name:    "openweathermap",
		cfg:     cfg,
		httpCfg: httpCfg,
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// owMain is the "main" block shared by current and forecast payloads.
type owMain struct {
	Temp      float64 `json:"temp"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  int     `json:"humidity"`
	Pressure  int     `json:"pressure"`
}

type owWeather struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

type owWind struct {
	Speed float64 `json:"speed"`
}

type owConditions struct {
	Name       string      `json:"name"`
	Main       owMain      `json:"main"`
	Weather    []owWeather `json:"weather"`
	Wind       owWind      `json:"wind"`
	Visibility int         `json:"visibility"`
	Sys        struct {
		Country string `json:"country"`
	} `json:"sys"`
}

type owForecast struct {
	List []struct {
		Dt         int64       `json:"dt"`
		Main       owMain      `json:"main"`
		Weather    []owWeather `json:"weather"`
		Wind       owWind      `json:"wind"`
		Visibility int         `json:"visibility"`
	} `json:"list"`
	City struct {
		Name     string `json:"name"`
		Country  string `json:"country"`
		Timezone int    `json:"timezone"`
	} `json:"city"`
}

type owFind struct {
	List []owConditions `json:"list"`
}

// FindPlaces calls /find and returns up to limit matching places.
func (p *OpenWeatherProvider) FindPlaces(ctx context.Context, query string, limit int) ([]weather.Place, error) {
	values := p.baseValues(query)
	values.Set("cnt", strconv.Itoa(limit))

	var payload owFind
	if err := getJSON(ctx, p.httpCfg, "find", p.endpoint("find", values), &payload); err != nil {
		return nil, err
	}

	places := make([]weather.Place, 0, len(payload.List))
	for _, item := range payload.List {
		if len(places) >= limit {
			break
		}
		places = append(places, weather.Place{Name: item.Name, Country: item.Sys.Country})
	}
	return places, nil
}

// CurrentConditions calls /weather for the place.
func (p *OpenWeatherProvider) CurrentConditions(ctx context.Context, place string) (weather.Conditions, error) {
	var payload owConditions
	if err := getJSON(ctx, p.httpCfg, "weather", p.endpoint("weather", p.baseValues(place)), &payload); err != nil {
		return weather.Conditions{}, err
	}

	return toConditions(
		weather.Place{Name: payload.Name, Country: payload.Sys.Country},
		payload.Main, payload.Weather, payload.Wind, payload.Visibility,
	), nil
}

// Forecast calls /forecast for the place and returns its 3-hour interval series.
func (p *OpenWeatherProvider) Forecast(ctx context.Context, place string) (weather.ForecastSeries, error) {
	var payload owForecast
	if err := getJSON(ctx, p.httpCfg, "forecast", p.endpoint("forecast", p.baseValues(place)), &payload); err != nil {
		return weather.ForecastSeries{}, err
	}

	series := weather.ForecastSeries{
		Place:          weather.Place{Name: payload.City.Name, Country: payload.City.Country},
		TimezoneOffset: payload.City.Timezone,
		Samples:        make([]weather.Sample, 0, len(payload.List)),
	}
	for _, item := range payload.List {
		series.Samples = append(series.Samples, weather.Sample{
			Conditions: toConditions(series.Place, item.Main, item.Weather, item.Wind, item.Visibility),
			Timestamp:  item.Dt,
		})
	}
	return series, nil
}

func (p *OpenWeatherProvider) baseValues(place string) url.Values {
	values := url.Values{}
	values.Set("q", common.PlaceQuery(place))
	values.Set("appid", p.cfg.APIKey)
	values.Set("units", p.cfg.Units)
	if p.cfg.Lang != "" {
		values.Set("lang", p.cfg.Lang)
	}
	return values
}

func (p *OpenWeatherProvider) endpoint(path string, values url.Values) string {
	return fmt.Sprintf("%s/%s?%s", p.cfg.BaseURL, path, values.Encode())
}

func toConditions(place weather.Place, m owMain, w []owWeather, wind owWind, visibility int) weather.Conditions {
	c := weather.Conditions{
		Place:       place,
		Temperature: m.Temp,
		TempMin:     m.TempMin,
		TempMax:     m.TempMax,
		FeelsLike:   m.FeelsLike,
		Humidity:    m.Humidity,
		Pressure:    m.Pressure,
		Visibility:  visibility,
		WindSpeed:   wind.Speed,
		Condition:   mapOpenWeatherCondition(w),
	}
	if len(w) > 0 {
		c.Description = w[0].Description
	}
	return c
}

func mapOpenWeatherCondition(items []owWeather) weather.Condition {
	if len(items) == 0 {
		return weather.ConditionOther
	}
	switch items[0].Main {
	case "Clear":
		return weather.ConditionClear
	case "Clouds":
		return weather.ConditionClouds
	case "Rain":
		return weather.ConditionRain
	case "Snow":
		return weather.ConditionSnow
	default:
		return weather.ConditionOther
	}
}
