// Package search keeps the persisted recent-search list.
package search

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"shopfront/internal/storage"
)

// DefaultLimit caps the number of retained search terms.
const DefaultLimit = 20

// History is a most-recent-first list of search terms, persisted under the
// search-history key after every change.
type History struct {
	mu     sync.Mutex
	terms  []string
	limit  int
	store  storage.Store
	logger zerolog.Logger
}

// NewHistory creates a search history, restoring any persisted terms. A
// limit of zero or less falls back to DefaultLimit.
func NewHistory(store storage.Store, limit int, logger zerolog.Logger) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	h := &History{
		limit:  limit,
		store:  store,
		logger: logger.With().Str("component", "search-history").Logger(),
	}

	var terms []string
	if store.Load(storage.KeySearchHistory, &terms) {
		if len(terms) > limit {
			terms = terms[:limit]
		}
		h.terms = terms
	}

	return h
}

// Record adds a term to the front of the history. Blank terms are ignored;
// an existing term moves to the front instead of duplicating.
func (h *History) Record(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	filtered := make([]string, 0, len(h.terms)+1)
	filtered = append(filtered, term)
	for _, t := range h.terms {
		if !strings.EqualFold(t, term) {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) > h.limit {
		filtered = filtered[:h.limit]
	}
	h.terms = filtered

	h.store.Save(storage.KeySearchHistory, h.terms)
}

// Recent returns up to n most recent terms, newest first. A non-positive n
// returns the full history.
func (h *History) Recent(n int) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n <= 0 || n > len(h.terms) {
		n = len(h.terms)
	}
	out := make([]string, n)
	copy(out, h.terms[:n])
	return out
}

// Clear empties the history and persists the empty list.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.terms = nil
	h.store.Save(storage.KeySearchHistory, []string{})
}
