// Package notes keeps session-scoped analyst annotations keyed by
// ticker. Purely in-memory; nothing here survives a restart.
package notes

import (
	"strings"
	"sync"
)

// Store is a concurrency-safe in-memory note store. Tickers are
// normalized to upper case so "aapl" and "AAPL" share one note.
type Store struct {
	mu    sync.RWMutex
	notes map[string]string
}

// NewStore creates an empty note store.
func NewStore() *Store {
	return &Store{
		notes: make(map[string]string),
	}
}

// Set stores the note for a ticker, replacing any previous note.
// An empty note deletes the entry.
func (s *Store) Set(ticker, note string) {
	key := normalize(ticker)

	s.mu.Lock()
	defer s.mu.Unlock()

	if note == "" {
		delete(s.notes, key)
		return
	}
	s.notes[key] = note
}

// Get returns the note for a ticker, or "" when none is stored.
func (s *Store) Get(ticker string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.notes[normalize(ticker)]
}

// All returns a copy of every stored note.
func (s *Store) All() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.notes))
	for k, v := range s.notes {
		out[k] = v
	}
	return out
}

// Delete removes the note for a ticker.
func (s *Store) Delete(ticker string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.notes, normalize(ticker))
}

func normalize(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
