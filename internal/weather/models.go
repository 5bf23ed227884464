package weather

import (
	"math"
	"time"
)

// Condition represents the primary condition category reported by a provider.
type Condition string

const (
	ConditionOther  Condition = "other"
	ConditionClear  Condition = "clear"
	ConditionClouds Condition = "clouds"
	ConditionRain   Condition = "rain"
	ConditionSnow   Condition = "snow"
)

// Place is a search hit returned by the provider's place lookup.
type Place struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// Label returns the display form "Name, CountryCode".
func (p Place) Label() string {
	if p.Country == "" {
		return p.Name
	}
	return p.Name + ", " + p.Country
}

// Conditions is a weather snapshot for a place. Temperatures are in °C,
// pressure in hPa, visibility in meters and wind speed in m/s.
type Conditions struct {
	Place       Place     `json:"place"`
	Temperature float64   `json:"temperatureC"`
	TempMin     float64   `json:"tempMinC"`
	TempMax     float64   `json:"tempMaxC"`
	FeelsLike   float64   `json:"feelsLikeC"`
	Humidity    int       `json:"humidityPercent"`
	Pressure    int       `json:"pressureHpa"`
	Visibility  int       `json:"visibilityM"`
	WindSpeed   float64   `json:"windSpeedMs"`
	Condition   Condition `json:"condition"`
	Description string    `json:"description"`
}

// WindSpeedKMH converts the wind speed to km/h.
func (c Conditions) WindSpeedKMH() float64 {
	return c.WindSpeed * 3.6
}

// VisibilityKM converts the visibility distance to kilometers.
func (c Conditions) VisibilityKM() float64 {
	return float64(c.Visibility) / 1000
}

// RoundedTemperature returns the temperature rounded to the nearest degree.
func (c Conditions) RoundedTemperature() int {
	return int(math.Round(c.Temperature))
}

// Sample is a single interval of a forecast series.
type Sample struct {
	Conditions
	Timestamp int64 `json:"dt"` // unix seconds
}

// Time returns the sample time in the given place offset.
func (s Sample) Time(offset *time.Location) time.Time {
	return time.Unix(s.Timestamp, 0).In(offset)
}

// ForecastSeries is an ordered list of interval samples for a place.
// TimezoneOffset is the place's UTC offset in seconds.
type ForecastSeries struct {
	Place          Place    `json:"place"`
	TimezoneOffset int      `json:"timezoneOffset"`
	Samples        []Sample `json:"samples"`
}

// Location returns a fixed zone for the place's local calendar.
func (f ForecastSeries) Location() *time.Location {
	if f.TimezoneOffset == 0 {
		return time.UTC
	}
	return time.FixedZone(f.Place.Label(), f.TimezoneOffset)
}
