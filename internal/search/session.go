package search

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/i474232898/weather-search/internal/common"
	"github.com/i474232898/weather-search/internal/store"
	"github.com/i474232898/weather-search/internal/weather"
)

// ErrEmptyQuery is returned by Submit when there is nothing to search.
var ErrEmptyQuery = errors.New("search query is empty")

// SuggestionsView is the state of the search input and its dropdown.
type SuggestionsView struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
	Visible     bool     `json:"visible"`
}

// View is a snapshot of everything the client displays.
type View struct {
	SuggestionsView
	CycleID    string               `json:"cycleId,omitempty"`
	Loading    bool                 `json:"loading"`
	Error      string               `json:"error,omitempty"`
	Conditions *weather.Conditions  `json:"conditions,omitempty"`
	Daily      []weather.DailyEntry `json:"daily"`
	Recent     []string             `json:"recent"`
}

// Session owns the search input, the suggestion dropdown and the displayed
// weather for one user. Suggestion results are applied last-write-wins by
// lookup sequence number.
type Session struct {
	merger      *Merger
	coordinator *Coordinator
	recent      *store.RecentSearches
	debouncer   *Debouncer

	mu          sync.Mutex
	query       string
	suggestions []string
	visible     bool
	lookupSeq   uint64
	appliedSeq  uint64
}

// NewSession wires a session. A nil clock uses the wall clock.
func NewSession(merger *Merger, coordinator *Coordinator, recent *store.RecentSearches, clock Clock, debounce time.Duration) *Session {
	s := &Session{
		merger:      merger,
		coordinator: coordinator,
		recent:      recent,
	}
	s.debouncer = NewDebouncer(clock, debounce, s.lookup)
	return s
}

// Input updates the query immediately and schedules a debounced suggestion lookup.
func (s *Session) Input(text string) {
	s.mu.Lock()
	s.query = text
	s.mu.Unlock()

	s.debouncer.Trigger(text)
}

// Escape hides the dropdown. In-flight lookups are not cancelled.
func (s *Session) Escape() {
	s.mu.Lock()
	s.visible = false
	s.mu.Unlock()
}

// Focus re-shows existing suggestions without a new lookup.
func (s *Session) Focus() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if common.RuneLen(s.query) >= MinQueryLength && len(s.suggestions) > 0 {
		s.visible = true
	}
}

// Submit searches the current query text and clears it.
func (s *Session) Submit(ctx context.Context) (Result, error) {
	s.mu.Lock()
	place := strings.TrimSpace(s.query)
	if place == "" {
		s.mu.Unlock()
		return Result{}, ErrEmptyQuery
	}
	s.query = ""
	s.mu.Unlock()

	return s.Search(ctx, place), nil
}

// SelectSuggestion searches a suggestion and clears the query.
func (s *Session) SelectSuggestion(ctx context.Context, suggestion string) Result {
	s.mu.Lock()
	s.query = ""
	s.mu.Unlock()

	return s.Search(ctx, suggestion)
}

// SelectRecent searches the i-th recent entry (0 is the most recent).
// The ledger changes only if the search succeeds.
func (s *Session) SelectRecent(ctx context.Context, i int) (Result, error) {
	entry, err := s.recent.Get(i)
	if err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	s.query = ""
	s.mu.Unlock()

	return s.Search(ctx, entry), nil
}

// Search hides the dropdown, drops any pending lookup and runs a search cycle.
func (s *Session) Search(ctx context.Context, place string) Result {
	s.debouncer.Cancel()

	s.mu.Lock()
	s.visible = false
	// Lookups still in flight must not re-open the dropdown.
	s.lookupSeq++
	s.appliedSeq = s.lookupSeq
	s.mu.Unlock()

	return s.coordinator.Search(ctx, place)
}

// Suggestions returns the input and dropdown state.
func (s *Session) Suggestions() SuggestionsView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SuggestionsView{
		Query:       s.query,
		Suggestions: append([]string{}, s.suggestions...),
		Visible:     s.visible && len(s.suggestions) > 0,
	}
}

// View returns a full snapshot, including the day-by-day forecast.
func (s *Session) View() View {
	st := s.coordinator.State()

	v := View{
		SuggestionsView: s.Suggestions(),
		CycleID:         st.CycleID,
		Loading:         st.Loading,
		Error:           st.Error,
		Conditions:      st.Conditions,
		Daily:           []weather.DailyEntry{},
		Recent:          s.recent.List(),
	}
	if st.Forecast != nil {
		v.Daily = weather.DailyForecast(*st.Forecast)
	}
	return v
}

// lookup runs when the debounce window closes.
func (s *Session) lookup(query string) {
	s.mu.Lock()
	s.lookupSeq++
	seq := s.lookupSeq
	s.mu.Unlock()

	// Dispatched lookups are not cancellable; stale results are discarded below.
	items := s.merger.Suggest(context.Background(), query)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.appliedSeq {
		return
	}
	s.appliedSeq = seq
	s.suggestions = items
	s.visible = len(items) > 0
}
