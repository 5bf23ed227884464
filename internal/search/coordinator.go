package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/i474232898/weather-search/internal/weather"
)

// Outcome is the consolidated result of one search cycle.
type Outcome int

const (
	// OutcomeSuccess means current conditions and forecast were both fetched.
	OutcomeSuccess Outcome = iota
	// OutcomePartial means current conditions were fetched but the forecast was not.
	OutcomePartial
	// OutcomeFailed means the current conditions lookup failed.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomePartial:
		return "partial"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// WeatherFetcher is the part of weather.Provider the Coordinator needs.
type WeatherFetcher interface {
	CurrentConditions(ctx context.Context, place string) (weather.Conditions, error)
	Forecast(ctx context.Context, place string) (weather.ForecastSeries, error)
}

// Ledger records successfully resolved places.
type Ledger interface {
	Record(entry string)
}

// Result describes one search cycle, whether or not it was the one displayed.
type Result struct {
	CycleID    string
	Outcome    Outcome
	Conditions *weather.Conditions
	Forecast   *weather.ForecastSeries
	Err        error
	Message    string // user-facing, set only for OutcomeFailed
}

// State is the displayed result set.
type State struct {
	CycleID    string
	Loading    bool
	Error      string
	Conditions *weather.Conditions
	Forecast   *weather.ForecastSeries
}

// Coordinator resolves a place into current conditions plus forecast and owns
// the displayed result. Overlapping searches are allowed; every slot keeps the
// result with the highest sequence number.
type Coordinator struct {
	fetcher  WeatherFetcher
	ledger   Ledger
	recorder Recorder

	mu            sync.Mutex
	seq           uint64
	conditionsSeq uint64
	forecastSeq   uint64
	inflight      int
	state         State
}

// NewCoordinator creates a Coordinator. A nil recorder disables metrics.
func NewCoordinator(fetcher WeatherFetcher, ledger Ledger, recorder Recorder) *Coordinator {
	if recorder == nil {
		recorder = NoopRecorder{}
	}
	return &Coordinator{
		fetcher:  fetcher,
		ledger:   ledger,
		recorder: recorder,
	}
}

// Search runs one cycle for place: current conditions first, then the
// ledger update, then the forecast. A forecast failure only degrades the
// outcome to OutcomePartial.
func (c *Coordinator) Search(ctx context.Context, place string) Result {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.inflight++
	c.state.Error = ""
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inflight--
		c.mu.Unlock()
	}()

	res := Result{CycleID: uuid.NewString()}

	conditions, err := c.fetcher.CurrentConditions(ctx, place)
	if err != nil {
		log.Printf("INFO: current conditions lookup failed for %q: %v", place, err)
		res.Outcome = OutcomeFailed
		res.Err = err
		res.Message = failureMessage(place, err)

		c.mu.Lock()
		if seq > c.conditionsSeq {
			c.conditionsSeq = seq
			c.forecastSeq = seq
			c.state.CycleID = res.CycleID
			c.state.Conditions = nil
			c.state.Forecast = nil
			c.state.Error = res.Message
		}
		c.mu.Unlock()

		c.recorder.ObserveSearch(res.Outcome.String())
		return res
	}

	res.Conditions = &conditions
	c.ledger.Record(conditions.Place.Label())

	c.mu.Lock()
	if seq > c.conditionsSeq {
		c.conditionsSeq = seq
		c.state.CycleID = res.CycleID
		c.state.Conditions = &conditions
		c.state.Forecast = nil
		c.state.Error = ""
	}
	c.mu.Unlock()

	forecast, err := c.fetcher.Forecast(ctx, place)
	if err != nil {
		log.Printf("INFO: forecast unavailable for %q: %v", place, err)
		res.Outcome = OutcomePartial
		c.recorder.ObserveSearch(res.Outcome.String())
		return res
	}

	res.Outcome = OutcomeSuccess
	res.Forecast = &forecast

	c.mu.Lock()
	// The forecast is shown only alongside the conditions of its own cycle.
	if seq == c.conditionsSeq && seq > c.forecastSeq {
		c.forecastSeq = seq
		c.state.Forecast = &forecast
	}
	c.mu.Unlock()

	c.recorder.ObserveSearch(res.Outcome.String())
	return res
}

// Refresh searches the currently displayed place again. It reports false
// when nothing is displayed.
func (c *Coordinator) Refresh(ctx context.Context) (Result, bool) {
	c.mu.Lock()
	current := c.state.Conditions
	c.mu.Unlock()

	if current == nil {
		return Result{}, false
	}
	return c.Search(ctx, current.Place.Label()), true
}

// State returns a copy of the displayed result set.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.state
	st.Loading = c.inflight > 0
	return st
}

func failureMessage(place string, err error) string {
	if errors.Is(err, weather.ErrNotFound) {
		return fmt.Sprintf("Place not found: %s", place)
	}
	return fmt.Sprintf("Could not load weather for %s, please try again", place)
}
