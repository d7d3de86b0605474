// Package wishlist owns the collection of wishlist aggregates. Mutations
// follow the same command/transition pattern as the cart engine; every
// applied command persists the full collection.
package wishlist

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"shopfront/internal/model"
)

// DefaultName is the name given to the wishlist created on first use.
const DefaultName = "My Wishlist"

// State is the consumer-visible wishlist engine state. ActiveWishlistID is
// uuid.Nil when no wishlist is active.
type State struct {
	Wishlists         []model.Wishlist
	ActiveWishlistID  uuid.UUID
	IsLoading         bool
	Error             string
	HasUnsavedChanges bool
}

// ItemInput carries the fields a caller supplies when adding an item.
type ItemInput struct {
	ProductID string
	VariantID string
	Product   *model.ProductSnapshot
	Variant   *model.VariantSnapshot
	Notes     string
}

// Command is a single wishlist mutation.
type Command interface {
	isCommand()
}

// Initialize creates one default wishlist when the collection is empty;
// otherwise it ensures the active id points at an existing list.
type Initialize struct{}

// Create appends a new wishlist and makes it active. A public wishlist gets
// a shareable link. An empty name is rejected via the Error field.
type Create struct {
	Name     string
	IsPublic bool
}

// Delete removes a wishlist by id. When the deleted list was active,
// activation falls to the first remaining wishlist.
type Delete struct {
	ID uuid.UUID
}

// Update mutates name and visibility. Toggling public generates a shareable
// link if absent; toggling private clears it.
type Update struct {
	ID       uuid.UUID
	Name     *string
	IsPublic *bool
}

// AddItem adds an item to the given wishlist, or to the active one when
// WishlistID is uuid.Nil (creating a default list when none exists). Adding
// a duplicate (ProductID, VariantID) pair is a silent no-op.
type AddItem struct {
	WishlistID uuid.UUID
	Item       ItemInput
}

// RemoveItem removes an item by id from the given or active wishlist.
type RemoveItem struct {
	WishlistID uuid.UUID
	ItemID     uuid.UUID
}

// MoveToCart removes an item from the given or active wishlist; the cart
// engine handles the corresponding addition.
type MoveToCart struct {
	WishlistID uuid.UUID
	ItemID     uuid.UUID
}

// MoveItemBetweenLists moves an item from one wishlist to another within a
// single transition, preserving the item's identity.
type MoveItemBetweenLists struct {
	FromID uuid.UUID
	ToID   uuid.UUID
	ItemID uuid.UUID
}

// RegenerateLink replaces the shareable link of a public wishlist. It has
// no effect on private lists.
type RegenerateLink struct {
	ID uuid.UUID
}

func (Initialize) isCommand()           {}
func (Create) isCommand()               {}
func (Delete) isCommand()               {}
func (Update) isCommand()               {}
func (AddItem) isCommand()              {}
func (RemoveItem) isCommand()           {}
func (MoveToCart) isCommand()           {}
func (MoveItemBetweenLists) isCommand() {}
func (RegenerateLink) isCommand()       {}

// Apply is the pure transition function over the wishlist collection.
func Apply(s State, cmd Command) State {
	next := s
	next.Wishlists = make([]model.Wishlist, len(s.Wishlists))
	for i := range s.Wishlists {
		next.Wishlists[i] = s.Wishlists[i].Clone()
	}

	now := time.Now()

	switch c := cmd.(type) {
	case Initialize:
		if len(next.Wishlists) == 0 {
			w := model.NewWishlist(DefaultName, false)
			w.IsDefault = true
			next.Wishlists = append(next.Wishlists, w)
			next.ActiveWishlistID = w.ID
			next.HasUnsavedChanges = true
		} else if findList(next.Wishlists, next.ActiveWishlistID) < 0 {
			next.ActiveWishlistID = next.Wishlists[0].ID
		}

	case Create:
		name := strings.TrimSpace(c.Name)
		if name == "" {
			next.Error = model.ErrEmptyWishlistName.Message
			break
		}
		w := model.NewWishlist(name, c.IsPublic)
		next.Wishlists = append(next.Wishlists, w)
		next.ActiveWishlistID = w.ID
		next.Error = ""
		next.HasUnsavedChanges = true

	case Delete:
		idx := findList(next.Wishlists, c.ID)
		if idx < 0 {
			break
		}
		next.Wishlists = append(next.Wishlists[:idx], next.Wishlists[idx+1:]...)
		if next.ActiveWishlistID == c.ID {
			if len(next.Wishlists) > 0 {
				next.ActiveWishlistID = next.Wishlists[0].ID
			} else {
				next.ActiveWishlistID = uuid.Nil
			}
		}
		next.HasUnsavedChanges = true

	case Update:
		idx := findList(next.Wishlists, c.ID)
		if idx < 0 {
			next.Error = model.ErrWishlistNotFound.Message
			break
		}
		w := &next.Wishlists[idx]
		if c.Name != nil {
			name := strings.TrimSpace(*c.Name)
			if name == "" {
				next.Error = model.ErrEmptyWishlistName.Message
				break
			}
			w.Name = name
		}
		if c.IsPublic != nil {
			w.IsPublic = *c.IsPublic
			if w.IsPublic {
				if w.ShareableLink == "" {
					w.ShareableLink = model.NewShareableLink()
				}
			} else {
				w.ShareableLink = ""
			}
		}
		w.UpdatedAt = now
		next.Error = ""
		next.HasUnsavedChanges = true

	case AddItem:
		idx, created := resolveTarget(&next, c.WishlistID)
		if idx < 0 {
			next.Error = model.ErrWishlistNotFound.Message
			break
		}
		w := &next.Wishlists[idx]
		if w.Contains(c.Item.ProductID, c.Item.VariantID) {
			// Duplicate slot: silent no-op, but a freshly created default
			// list still needs persisting.
			next.HasUnsavedChanges = next.HasUnsavedChanges || created
			break
		}
		w.Items = append(w.Items, model.WishlistItem{
			ID:        uuid.New(),
			ProductID: c.Item.ProductID,
			VariantID: c.Item.VariantID,
			Product:   c.Item.Product,
			Variant:   c.Item.Variant,
			Notes:     c.Item.Notes,
			AddedAt:   now,
		})
		w.UpdatedAt = now
		next.HasUnsavedChanges = true

	case RemoveItem:
		removeListItem(&next, c.WishlistID, c.ItemID, now)

	case MoveToCart:
		removeListItem(&next, c.WishlistID, c.ItemID, now)

	case MoveItemBetweenLists:
		fromIdx := findList(next.Wishlists, c.FromID)
		toIdx := findList(next.Wishlists, c.ToID)
		if fromIdx < 0 || toIdx < 0 {
			next.Error = model.ErrWishlistNotFound.Message
			break
		}
		from := &next.Wishlists[fromIdx]
		itemIdx := from.FindItem(c.ItemID)
		if itemIdx < 0 {
			break
		}
		item := from.Items[itemIdx]
		from.Items = append(from.Items[:itemIdx], from.Items[itemIdx+1:]...)
		from.UpdatedAt = now
		to := &next.Wishlists[toIdx]
		to.Items = append(to.Items, item)
		to.UpdatedAt = now
		next.HasUnsavedChanges = true

	case RegenerateLink:
		idx := findList(next.Wishlists, c.ID)
		if idx < 0 {
			break
		}
		w := &next.Wishlists[idx]
		if !w.IsPublic {
			break
		}
		w.ShareableLink = model.NewShareableLink()
		w.UpdatedAt = now
		next.HasUnsavedChanges = true
	}

	return next
}

// findList returns the index of the wishlist with the given id, or -1.
func findList(lists []model.Wishlist, id uuid.UUID) int {
	for i := range lists {
		if lists[i].ID == id {
			return i
		}
	}
	return -1
}

// resolveTarget resolves a command's target wishlist: the given id, or the
// active list when the id is uuid.Nil, creating a default list when the
// collection is empty and no id was given. It reports whether a list was
// created.
func resolveTarget(s *State, id uuid.UUID) (int, bool) {
	if id != uuid.Nil {
		return findList(s.Wishlists, id), false
	}
	if idx := findList(s.Wishlists, s.ActiveWishlistID); idx >= 0 {
		return idx, false
	}
	if len(s.Wishlists) > 0 {
		s.ActiveWishlistID = s.Wishlists[0].ID
		return 0, false
	}
	w := model.NewWishlist(DefaultName, false)
	w.IsDefault = true
	s.Wishlists = append(s.Wishlists, w)
	s.ActiveWishlistID = w.ID
	return len(s.Wishlists) - 1, true
}

// removeListItem filters an item out of the targeted wishlist. Unlike
// AddItem it never creates a default list.
func removeListItem(s *State, wishlistID, itemID uuid.UUID, now time.Time) {
	target := wishlistID
	if target == uuid.Nil {
		target = s.ActiveWishlistID
	}
	idx := findList(s.Wishlists, target)
	if idx < 0 {
		s.Error = model.ErrWishlistNotFound.Message
		return
	}
	w := &s.Wishlists[idx]
	itemIdx := w.FindItem(itemID)
	if itemIdx < 0 {
		return
	}
	w.Items = append(w.Items[:itemIdx], w.Items[itemIdx+1:]...)
	w.UpdatedAt = now
	s.HasUnsavedChanges = true
}
