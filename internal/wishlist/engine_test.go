package wishlist

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/storage"
)

func TestNewEngine_RestoresSnapshot(t *testing.T) {
	store := storage.NewMemoryStore(zerolog.Nop())

	first := NewEngine(store, zerolog.Nop())
	first.Dispatch(Create{Name: "Gifts", IsPublic: true})
	state := first.Dispatch(AddItem{Item: itemInput("p1", "v1")})
	require.Len(t, state.Wishlists, 1)

	second := NewEngine(store, zerolog.Nop())

	restored := second.State()
	require.Len(t, restored.Wishlists, 1)
	assert.Equal(t, state.Wishlists[0].ID, restored.Wishlists[0].ID)
	assert.Equal(t, "Gifts", restored.Wishlists[0].Name)
	assert.Len(t, restored.Wishlists[0].Items, 1)
	assert.Equal(t, state.ActiveWishlistID, restored.ActiveWishlistID)
	assert.NotEmpty(t, restored.Wishlists[0].ShareableLink)
}

func TestEngine_Dispatch_Initialize(t *testing.T) {
	store := storage.NewMemoryStore(zerolog.Nop())
	engine := NewEngine(store, zerolog.Nop())

	state := engine.Dispatch(Initialize{})

	require.Len(t, state.Wishlists, 1)
	assert.Equal(t, DefaultName, state.Wishlists[0].Name)

	active, ok := engine.Active()
	require.True(t, ok)
	assert.Equal(t, state.Wishlists[0].ID, active.ID)
}

func TestEngine_Find(t *testing.T) {
	store := storage.NewMemoryStore(zerolog.Nop())
	engine := NewEngine(store, zerolog.Nop())

	state := engine.Dispatch(Create{Name: "Gifts"})
	id := state.Wishlists[0].ID

	found, ok := engine.Find(id)
	require.True(t, ok)
	assert.Equal(t, "Gifts", found.Name)

	_, ok = engine.Find(uuid.New())
	assert.False(t, ok)
}

func TestEngine_Items(t *testing.T) {
	store := storage.NewMemoryStore(zerolog.Nop())
	engine := NewEngine(store, zerolog.Nop())

	state := engine.Dispatch(Create{Name: "Gifts"})
	id := state.Wishlists[0].ID
	engine.Dispatch(AddItem{WishlistID: id, Item: itemInput("p1", "")})
	engine.Dispatch(AddItem{WishlistID: id, Item: itemInput("p2", "")})

	assert.Len(t, engine.Items(id), 2)
	// uuid.Nil resolves to the active wishlist.
	assert.Len(t, engine.Items(uuid.Nil), 2)
	assert.Nil(t, engine.Items(uuid.New()))
}

func TestEngine_Dispatch_SnapshotDoesNotAliasState(t *testing.T) {
	store := storage.NewMemoryStore(zerolog.Nop())
	engine := NewEngine(store, zerolog.Nop())

	state := engine.Dispatch(Create{Name: "Gifts"})
	state.Wishlists[0].Name = "Tampered"

	fresh := engine.State()
	assert.Equal(t, "Gifts", fresh.Wishlists[0].Name)
}
