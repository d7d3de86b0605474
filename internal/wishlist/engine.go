package wishlist

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"shopfront/internal/model"
	"shopfront/internal/storage"
)

// Snapshot is the persisted shape of the wishlist collection.
type Snapshot struct {
	Wishlists        []model.Wishlist `json:"wishlists"`
	ActiveWishlistID uuid.UUID        `json:"activeWishlistId"`
}

// Engine serializes wishlist mutations, persisting the full collection
// after every applied command.
type Engine struct {
	mu     sync.Mutex
	state  State
	store  storage.Store
	logger zerolog.Logger
}

// NewEngine creates a wishlist engine, restoring any persisted collection.
func NewEngine(store storage.Store, logger zerolog.Logger) *Engine {
	e := &Engine{
		store:  store,
		logger: logger.With().Str("component", "wishlist-engine").Logger(),
	}

	var snapshot Snapshot
	if store.Load(storage.KeyWishlists, &snapshot) {
		e.state.Wishlists = snapshot.Wishlists
		e.state.ActiveWishlistID = snapshot.ActiveWishlistID
		e.logger.Info().
			Int("wishlists", len(snapshot.Wishlists)).
			Msg("wishlists restored from snapshot")
	}

	return e
}

// Dispatch applies a command and persists the resulting collection. It
// returns a snapshot of the new state.
func (e *Engine) Dispatch(cmd Command) State {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = Apply(e.state, cmd)
	e.store.Save(storage.KeyWishlists, Snapshot{
		Wishlists:        e.state.Wishlists,
		ActiveWishlistID: e.state.ActiveWishlistID,
	})
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() State {
	snapshot := e.state
	snapshot.Wishlists = make([]model.Wishlist, len(e.state.Wishlists))
	for i := range e.state.Wishlists {
		snapshot.Wishlists[i] = e.state.Wishlists[i].Clone()
	}
	return snapshot
}

// State returns a snapshot of the engine state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Find returns a copy of the wishlist with the given id.
func (e *Engine) Find(id uuid.UUID) (model.Wishlist, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx := findList(e.state.Wishlists, id)
	if idx < 0 {
		return model.Wishlist{}, false
	}
	return e.state.Wishlists[idx].Clone(), true
}

// Active returns a copy of the active wishlist.
func (e *Engine) Active() (model.Wishlist, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx := findList(e.state.Wishlists, e.state.ActiveWishlistID)
	if idx < 0 {
		return model.Wishlist{}, false
	}
	return e.state.Wishlists[idx].Clone(), true
}

// Items returns the items of the wishlist with the given id, or of the
// active wishlist when id is uuid.Nil.
func (e *Engine) Items(id uuid.UUID) []model.WishlistItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	target := id
	if target == uuid.Nil {
		target = e.state.ActiveWishlistID
	}
	idx := findList(e.state.Wishlists, target)
	if idx < 0 {
		return nil
	}
	items := make([]model.WishlistItem, len(e.state.Wishlists[idx].Items))
	copy(items, e.state.Wishlists[idx].Items)
	return items
}
