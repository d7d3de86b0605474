package model

import (
	"time"

	"github.com/google/uuid"
)

// WishlistItem is an entry in a wishlist. It carries display snapshots of
// the product and variant taken at add time.
type WishlistItem struct {
	ID        uuid.UUID        `json:"id"`
	ProductID string           `json:"productId"`
	VariantID string           `json:"variantId,omitempty"`
	Product   *ProductSnapshot `json:"product,omitempty"`
	Variant   *VariantSnapshot `json:"variant,omitempty"`
	Notes     string           `json:"notes,omitempty"`
	AddedAt   time.Time        `json:"addedAt"`
}

// Matches reports whether the item occupies the (productID, variantID) slot.
func (i *WishlistItem) Matches(productID, variantID string) bool {
	return i.ProductID == productID && i.VariantID == variantID
}

// Wishlist is a named list of saved items. Invariants:
//   - items are unique by (ProductID, VariantID);
//   - ShareableLink is non-empty if and only if IsPublic is true.
type Wishlist struct {
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name"`
	Items         []WishlistItem `json:"items"`
	IsPublic      bool           `json:"isPublic"`
	ShareableLink string         `json:"shareableLink,omitempty"`
	IsDefault     bool           `json:"isDefault"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// NewWishlist creates an empty wishlist. A shareable link is generated only
// for public lists.
func NewWishlist(name string, isPublic bool) Wishlist {
	now := time.Now()
	w := Wishlist{
		ID:        uuid.New(),
		Name:      name,
		Items:     []WishlistItem{},
		IsPublic:  isPublic,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if isPublic {
		w.ShareableLink = NewShareableLink()
	}
	return w
}

// NewShareableLink mints a public path for a wishlist.
func NewShareableLink() string {
	return "/wishlists/shared/" + uuid.NewString()
}

// FindItem returns the index of the item with the given id, or -1.
func (w *Wishlist) FindItem(itemID uuid.UUID) int {
	for i := range w.Items {
		if w.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// Contains reports whether the (productID, variantID) slot is already taken.
func (w *Wishlist) Contains(productID, variantID string) bool {
	for i := range w.Items {
		if w.Items[i].Matches(productID, variantID) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the wishlist.
func (w *Wishlist) Clone() Wishlist {
	clone := *w
	clone.Items = make([]WishlistItem, len(w.Items))
	copy(clone.Items, w.Items)
	return clone
}
