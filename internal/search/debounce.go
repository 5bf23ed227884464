package search

import (
	"sync"
	"time"
)

// DefaultDebounceDelay is the quiet period before a suggestion lookup runs.
const DefaultDebounceDelay = 300 * time.Millisecond

// Timer is a cancellable scheduled call.
type Timer interface {
	Stop() bool
}

// Clock schedules delayed calls. RealClock uses time.AfterFunc.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealClock is the wall-clock Clock.
type RealClock struct{}

func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer runs fn with the latest value once input has been quiet for delay.
// Each Trigger cancels the previously scheduled call; only the call scheduled
// by the most recent Trigger can run.
type Debouncer struct {
	clock Clock
	delay time.Duration
	fn    func(string)

	mu    sync.Mutex
	timer Timer
	gen   uint64
}

// NewDebouncer creates a Debouncer. A nil clock uses RealClock and a
// non-positive delay uses DefaultDebounceDelay.
func NewDebouncer(clock Clock, delay time.Duration, fn func(string)) *Debouncer {
	if clock == nil {
		clock = RealClock{}
	}
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	return &Debouncer{clock: clock, delay: delay, fn: fn}
}

// Trigger reschedules the call with value.
func (d *Debouncer) Trigger(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A timer that fired while being stopped must not run.
		current := gen == d.gen
		if current {
			d.timer = nil
		}
		d.mu.Unlock()

		if current {
			d.fn(value)
		}
	})
}

// Cancel drops any pending call. Calls already running are not interrupted.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.gen++
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
