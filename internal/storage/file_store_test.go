package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Tags  []string `json:"tags,omitempty"`
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	store := NewFileStore(t.TempDir(), zerolog.Nop())

	in := snapshot{Name: "cart", Count: 3, Tags: []string{"a", "b"}}
	store.Save(KeyCart, in)

	var out snapshot
	ok := store.Load(KeyCart, &out)

	require.True(t, ok)
	assert.Equal(t, in, out)
}

func TestFileStore_LoadMissingKey(t *testing.T) {
	store := NewFileStore(t.TempDir(), zerolog.Nop())

	var out snapshot
	ok := store.Load(KeyWishlists, &out)

	assert.False(t, ok)
	assert.Equal(t, snapshot{}, out)
}

func TestFileStore_LoadCorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyCart+".json"), []byte("{not json"), 0o644))

	store := NewFileStore(dir, zerolog.Nop())

	var out snapshot
	ok := store.Load(KeyCart, &out)

	assert.False(t, ok)
}

func TestFileStore_SaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "snapshots")
	store := NewFileStore(dir, zerolog.Nop())

	store.Save(KeySearchHistory, []string{"shoes"})

	var out []string
	require.True(t, store.Load(KeySearchHistory, &out))
	assert.Equal(t, []string{"shoes"}, out)
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	store := NewFileStore(t.TempDir(), zerolog.Nop())

	store.Save(KeyCart, snapshot{Name: "first", Count: 1})
	store.Save(KeyCart, snapshot{Name: "second", Count: 2})

	var out snapshot
	require.True(t, store.Load(KeyCart, &out))
	assert.Equal(t, "second", out.Name)
	assert.Equal(t, 2, out.Count)
}

func TestFileStore_KeysAreIsolated(t *testing.T) {
	store := NewFileStore(t.TempDir(), zerolog.Nop())

	store.Save(KeyCart, snapshot{Name: "cart"})
	store.Save(KeyWishlists, snapshot{Name: "wishlists"})

	var cart, wishlists snapshot
	require.True(t, store.Load(KeyCart, &cart))
	require.True(t, store.Load(KeyWishlists, &wishlists))
	assert.Equal(t, "cart", cart.Name)
	assert.Equal(t, "wishlists", wishlists.Name)
}

func TestMemoryStore_SaveAndLoad(t *testing.T) {
	store := NewMemoryStore(zerolog.Nop())

	in := snapshot{Name: "cart", Count: 2}
	store.Save(KeyCart, in)

	var out snapshot
	require.True(t, store.Load(KeyCart, &out))
	assert.Equal(t, in, out)

	var missing snapshot
	assert.False(t, store.Load(KeyWishlists, &missing))
}

func TestMemoryStore_ValuesDoNotAlias(t *testing.T) {
	store := NewMemoryStore(zerolog.Nop())

	in := snapshot{Name: "cart", Tags: []string{"a"}}
	store.Save(KeyCart, in)
	in.Tags[0] = "mutated"

	var out snapshot
	require.True(t, store.Load(KeyCart, &out))
	assert.Equal(t, []string{"a"}, out.Tags)
}
