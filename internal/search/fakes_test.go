package search

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/i474232898/weather-search/internal/weather"
)

// fakeClock fires timers only when Advance moves past their deadline.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &fakeTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward and runs due timers in deadline order.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.f()
	}
}

// pending returns deadlines of timers that are neither stopped nor fired.
func (c *fakeClock) pending() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []time.Duration
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			out = append(out, t.at)
		}
	}
	return out
}

// fakeProvider serves canned responses keyed by place query.
type fakeProvider struct {
	mu sync.Mutex

	places      []weather.Place
	findErr     error
	conditions  map[string]weather.Conditions
	forecasts   map[string]weather.ForecastSeries
	forecastErr error

	findCalls     []string
	currentCalls  []string
	forecastCalls []string

	// gate, when set for a place, blocks CurrentConditions until closed.
	gate map[string]chan struct{}
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		conditions: make(map[string]weather.Conditions),
		forecasts:  make(map[string]weather.ForecastSeries),
		gate:       make(map[string]chan struct{}),
	}
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) FindPlaces(_ context.Context, query string, limit int) ([]weather.Place, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.findCalls = append(p.findCalls, query)
	if p.findErr != nil {
		return nil, p.findErr
	}
	if len(p.places) > limit {
		return p.places[:limit], nil
	}
	return p.places, nil
}

func (p *fakeProvider) CurrentConditions(_ context.Context, place string) (weather.Conditions, error) {
	p.mu.Lock()
	p.currentCalls = append(p.currentCalls, place)
	gate := p.gate[place]
	p.mu.Unlock()

	if gate != nil {
		<-gate
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.conditions[place]
	if !ok {
		return weather.Conditions{}, fmt.Errorf("%w: %s", weather.ErrNotFound, place)
	}
	return c, nil
}

func (p *fakeProvider) Forecast(_ context.Context, place string) (weather.ForecastSeries, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.forecastCalls = append(p.forecastCalls, place)
	if p.forecastErr != nil {
		return weather.ForecastSeries{}, p.forecastErr
	}
	f, ok := p.forecasts[place]
	if !ok {
		return weather.ForecastSeries{}, weather.ErrProviderUnavailable
	}
	return f, nil
}

func (p *fakeProvider) addPlace(query, name, country string, forecastDays int) {
	place := weather.Place{Name: name, Country: country}
	p.conditions[query] = weather.Conditions{Place: place, Temperature: 15, Description: "clear sky", Condition: weather.ConditionClear}

	if forecastDays <= 0 {
		return
	}
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	series := weather.ForecastSeries{Place: place}
	for day := 0; day < forecastDays; day++ {
		for slot := 0; slot < 8; slot++ {
			ts := base.AddDate(0, 0, day).Add(time.Duration(slot) * 3 * time.Hour)
			series.Samples = append(series.Samples, weather.Sample{
				Conditions: weather.Conditions{Place: place},
				Timestamp:  ts.Unix(),
			})
		}
	}
	p.forecasts[query] = series
}

// recordingRecorder captures observations.
type recordingRecorder struct {
	mu          sync.Mutex
	searches    []string
	suggestions []string
}

func (r *recordingRecorder) ObserveSearch(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searches = append(r.searches, outcome)
}

func (r *recordingRecorder) ObserveSuggestions(source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suggestions = append(r.suggestions, source)
}
