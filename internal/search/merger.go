package search

import (
	"context"
	"log"

	"github.com/i474232898/weather-search/internal/common"
	"github.com/i474232898/weather-search/internal/weather"
)

const (
	// MinQueryLength is the shortest query that triggers a suggestion lookup.
	MinQueryLength = 2
	// MaxSuggestions caps the merged suggestion list.
	MaxSuggestions = 5

	maxLocalMerged = 3
)

// Suggestion lookup sources reported to the Recorder.
const (
	SourceMerged        = "merged"
	SourceLocalFallback = "local_fallback"
	SourceSkipped       = "skipped"
)

// PlaceFinder is the remote place search used for suggestions.
type PlaceFinder interface {
	FindPlaces(ctx context.Context, query string, limit int) ([]weather.Place, error)
}

// Merger combines the static place list with remote search hits.
type Merger struct {
	places   []string
	finder   PlaceFinder
	recorder Recorder
}

// NewMerger creates a Merger. A nil recorder disables metrics.
func NewMerger(places []string, finder PlaceFinder, recorder Recorder) *Merger {
	if recorder == nil {
		recorder = NoopRecorder{}
	}
	return &Merger{
		places:   places,
		finder:   finder,
		recorder: recorder,
	}
}

// Suggest returns at most MaxSuggestions unique "Name, CountryCode" strings,
// local matches first. Queries shorter than MinQueryLength yield nil.
// A failed remote search degrades to local matches only and is never returned
// as an error.
func (m *Merger) Suggest(ctx context.Context, query string) []string {
	if common.RuneLen(query) < MinQueryLength {
		m.recorder.ObserveSuggestions(SourceSkipped)
		return nil
	}

	type remoteResult struct {
		places []weather.Place
		err    error
	}
	remote := make(chan remoteResult, 1)
	go func() {
		places, err := m.finder.FindPlaces(ctx, query, MaxSuggestions)
		remote <- remoteResult{places: places, err: err}
	}()

	local := m.filterLocal(query, maxLocalMerged)

	res := <-remote
	if res.err != nil {
		log.Printf("WARN: suggestion search failed for %q, using local places: %v", query, res.err)
		m.recorder.ObserveSuggestions(SourceLocalFallback)
		return m.filterLocal(query, MaxSuggestions)
	}

	seen := make(map[string]struct{}, len(local)+len(res.places))
	merged := make([]string, 0, MaxSuggestions)
	add := func(s string) {
		if _, dup := seen[s]; dup || len(merged) >= MaxSuggestions {
			return
		}
		seen[s] = struct{}{}
		merged = append(merged, s)
	}
	for _, s := range local {
		add(s)
	}
	for _, p := range res.places {
		add(p.Label())
	}

	m.recorder.ObserveSuggestions(SourceMerged)
	return merged
}

func (m *Merger) filterLocal(query string, limit int) []string {
	out := make([]string, 0, limit)
	for _, place := range m.places {
		if len(out) >= limit {
			break
		}
		if common.ContainsFold(place, query) {
			out = append(out, place)
		}
	}
	return out
}
