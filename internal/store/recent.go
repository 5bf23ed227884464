package store

import (
	"errors"
	"sync"
)

// DefaultMaxRecent is the ledger capacity.
const DefaultMaxRecent = 5

var (
	// ErrNotFound is returned when no recent search exists at the requested position.
	ErrNotFound = errors.New("no recent search at position")
)

// RecentSearches is a concurrency-safe, bounded, most-recent-first list of
// "Name, CountryCode" entries without duplicates. It lives for the process
// lifetime and is never persisted.
type RecentSearches struct {
	mu sync.RWMutex

	entries []string

	// retention configuration
	maxEntries int
}

// NewRecentSearches creates a ledger holding at most maxEntries.
// If maxEntries is <= 0, DefaultMaxRecent is used.
func NewRecentSearches(maxEntries int) *RecentSearches {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxRecent
	}
	return &RecentSearches{
		entries:    make([]string, 0, maxEntries),
		maxEntries: maxEntries,
	}
}

// Record moves entry to the front, dropping any earlier occurrence, and
// enforces retention.
func (s *RecentSearches) Record(entry string) {
	if entry == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]string, 0, len(s.entries)+1)
	updated = append(updated, entry)
	for _, e := range s.entries {
		if e != entry {
			updated = append(updated, e)
		}
	}

	// Enforce retention by count.
	if len(updated) > s.maxEntries {
		updated = updated[:s.maxEntries]
	}
	s.entries = updated
}

// List returns a copy of the entries, most recent first.
func (s *RecentSearches) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get returns the entry at index i (0 is the most recent).
func (s *RecentSearches) Get(i int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i < 0 || i >= len(s.entries) {
		return "", ErrNotFound
	}
	return s.entries[i], nil
}
