package search

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"shopfront/internal/storage"
)

func newTestHistory(store storage.Store, limit int) *History {
	return NewHistory(store, limit, zerolog.Nop())
}

func TestHistory_Record(t *testing.T) {
	h := newTestHistory(storage.NewMemoryStore(zerolog.Nop()), 0)

	h.Record("shoes")
	h.Record("hats")

	assert.Equal(t, []string{"hats", "shoes"}, h.Recent(0))
}

func TestHistory_Record_IgnoresBlankTerms(t *testing.T) {
	h := newTestHistory(storage.NewMemoryStore(zerolog.Nop()), 0)

	h.Record("")
	h.Record("   ")

	assert.Empty(t, h.Recent(0))
}

func TestHistory_Record_TrimsWhitespace(t *testing.T) {
	h := newTestHistory(storage.NewMemoryStore(zerolog.Nop()), 0)

	h.Record("  shoes  ")

	assert.Equal(t, []string{"shoes"}, h.Recent(0))
}

func TestHistory_Record_DedupesCaseInsensitively(t *testing.T) {
	h := newTestHistory(storage.NewMemoryStore(zerolog.Nop()), 0)

	h.Record("shoes")
	h.Record("hats")
	h.Record("SHOES")

	// The repeated term moves to the front with its latest casing.
	assert.Equal(t, []string{"SHOES", "hats"}, h.Recent(0))
}

func TestHistory_Record_EnforcesLimit(t *testing.T) {
	h := newTestHistory(storage.NewMemoryStore(zerolog.Nop()), 3)

	for i := 1; i <= 5; i++ {
		h.Record(fmt.Sprintf("term-%d", i))
	}

	assert.Equal(t, []string{"term-5", "term-4", "term-3"}, h.Recent(0))
}

func TestHistory_Recent(t *testing.T) {
	h := newTestHistory(storage.NewMemoryStore(zerolog.Nop()), 0)
	h.Record("one")
	h.Record("two")
	h.Record("three")

	assert.Equal(t, []string{"three", "two"}, h.Recent(2))
	assert.Equal(t, []string{"three", "two", "one"}, h.Recent(10))
	assert.Equal(t, []string{"three", "two", "one"}, h.Recent(-1))
}

func TestHistory_Clear(t *testing.T) {
	store := storage.NewMemoryStore(zerolog.Nop())
	h := newTestHistory(store, 0)
	h.Record("shoes")

	h.Clear()

	assert.Empty(t, h.Recent(0))

	// The cleared state is persisted too.
	restored := newTestHistory(store, 0)
	assert.Empty(t, restored.Recent(0))
}

func TestNewHistory_RestoresPersistedTerms(t *testing.T) {
	store := storage.NewMemoryStore(zerolog.Nop())
	first := newTestHistory(store, 0)
	first.Record("shoes")
	first.Record("hats")

	second := newTestHistory(store, 0)

	assert.Equal(t, []string{"hats", "shoes"}, second.Recent(0))
}

func TestNewHistory_TruncatesOversizedSnapshot(t *testing.T) {
	store := storage.NewMemoryStore(zerolog.Nop())
	store.Save(storage.KeySearchHistory, []string{"a", "b", "c", "d"})

	h := newTestHistory(store, 2)

	assert.Equal(t, []string{"a", "b"}, h.Recent(0))
}
