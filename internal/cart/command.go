// Package cart owns the shopping cart aggregate. Every mutation is a
// Command applied through a single pure transition function; the Engine
// wraps dispatch with totals recomputation and snapshot persistence.
package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shopfront/internal/model"
	"shopfront/internal/pricing"
)

// State is the consumer-visible cart engine state.
type State struct {
	Cart              *model.Cart
	IsLoading         bool
	Error             string
	MergeInProgress   bool
	HasUnsavedChanges bool
	AppliedPromoCode  string
	IsPromoCodeValid  bool
	PromoCodeError    string
}

// Command is a single cart mutation. The concrete command types form a
// closed set dispatched through Apply.
type Command interface {
	isCommand()
}

// Initialize creates an empty cart when none exists; otherwise a no-op.
type Initialize struct{}

// AddItem adds a product to the cart. When the (ProductID, VariantID) slot
// is already occupied the existing item's quantity is increased and its
// subtotal recomputed at the incoming unit price.
type AddItem struct {
	ProductID        string
	VariantID        string
	Quantity         int
	UnitPrice        decimal.Decimal
	DiscountTotal    decimal.Decimal
	IsDigital        bool
	RequiresShipping bool
	IsTaxExempt      bool
	Weight           float64
	Product          *model.ProductSnapshot
	Variant          *model.VariantSnapshot
}

// UpdateItemQuantity changes an item's quantity at its existing unit price.
// A quantity of zero or less removes the item.
type UpdateItemQuantity struct {
	ItemID   uuid.UUID
	Quantity int
}

// RemoveItem removes an item by id. Removing a missing id is a no-op.
type RemoveItem struct {
	ItemID uuid.UUID
}

// MoveToWishlist removes an item from the cart; the wishlist engine handles
// the corresponding addition.
type MoveToWishlist struct {
	ItemID uuid.UUID
}

// SaveForLater removes an item from the cart; the saved-items collaborator
// handles the corresponding addition. Its cart-side effect is identical to
// MoveToWishlist.
type SaveForLater struct {
	ItemID uuid.UUID
}

// Clear replaces the cart with a fresh empty aggregate under a new id.
type Clear struct{}

// RemoveCoupon removes a coupon by code.
type RemoveCoupon struct {
	Code string
}

// ApplyCoupon appends or replaces a coupon whose discount amount has already
// been frozen. It is the terminal phase of the promo-code flow.
type ApplyCoupon struct {
	Coupon model.CartCoupon
}

// SelectShipping sets the shipping option feeding the totals.
type SelectShipping struct {
	Option *model.ShippingOption
}

// MarkConverted closes the cart; every later mutating command is rejected.
type MarkConverted struct{}

func (Initialize) isCommand()         {}
func (AddItem) isCommand()            {}
func (UpdateItemQuantity) isCommand() {}
func (RemoveItem) isCommand()         {}
func (MoveToWishlist) isCommand()     {}
func (SaveForLater) isCommand()       {}
func (Clear) isCommand()              {}
func (RemoveCoupon) isCommand()       {}
func (ApplyCoupon) isCommand()        {}
func (SelectShipping) isCommand()     {}
func (MarkConverted) isCommand()      {}

// Apply is the pure transition function: it produces the next state for a
// command without touching the previous one, then recomputes the derived
// totals. Persistence happens outside, in the engine.
func Apply(s State, cmd Command, calc *pricing.Calculator, currency string) State {
	next := s
	next.Cart = s.Cart.Clone()

	if next.Cart != nil && next.Cart.ConvertedToOrder {
		if _, ok := cmd.(Initialize); !ok {
			next.Error = model.ErrCartConverted.Message
			return next
		}
	}

	now := time.Now()
	changed := false

	switch c := cmd.(type) {
	case Initialize:
		if next.Cart == nil {
			next.Cart = model.NewCart(currency)
			changed = true
		}

	case AddItem:
		if next.Cart == nil {
			next.Cart = model.NewCart(currency)
		}
		if idx := next.Cart.FindItemBySlot(c.ProductID, c.VariantID); idx >= 0 {
			item := &next.Cart.Items[idx]
			item.Quantity += c.Quantity
			// The incoming unit price wins on merge.
			item.UnitPrice = c.UnitPrice
			item.Subtotal = pricing.ItemSubtotal(item.UnitPrice, item.Quantity)
			item.Total = item.Subtotal.Sub(item.DiscountTotal)
			item.UpdatedAt = now
		} else {
			subtotal := pricing.ItemSubtotal(c.UnitPrice, c.Quantity)
			next.Cart.Items = append(next.Cart.Items, model.CartItem{
				ID:               uuid.New(),
				ProductID:        c.ProductID,
				VariantID:        c.VariantID,
				Quantity:         c.Quantity,
				UnitPrice:        c.UnitPrice,
				Subtotal:         subtotal,
				DiscountTotal:    c.DiscountTotal,
				Total:            subtotal.Sub(c.DiscountTotal),
				IsDigital:        c.IsDigital,
				RequiresShipping: c.RequiresShipping,
				IsTaxExempt:      c.IsTaxExempt,
				Weight:           c.Weight,
				Product:          c.Product,
				Variant:          c.Variant,
				AddedAt:          now,
				UpdatedAt:        now,
			})
		}
		next.HasUnsavedChanges = true
		changed = true

	case UpdateItemQuantity:
		if next.Cart == nil {
			break
		}
		idx := next.Cart.FindItem(c.ItemID)
		if idx < 0 {
			break
		}
		if c.Quantity <= 0 {
			next.Cart.Items = append(next.Cart.Items[:idx], next.Cart.Items[idx+1:]...)
		} else {
			item := &next.Cart.Items[idx]
			item.Quantity = c.Quantity
			item.Subtotal = pricing.ItemSubtotal(item.UnitPrice, item.Quantity)
			item.Total = item.Subtotal.Sub(item.DiscountTotal)
			item.UpdatedAt = now
		}
		next.HasUnsavedChanges = true
		changed = true

	case RemoveItem:
		changed = removeItem(&next, c.ItemID)

	case MoveToWishlist:
		changed = removeItem(&next, c.ItemID)

	case SaveForLater:
		changed = removeItem(&next, c.ItemID)

	case Clear:
		next.Cart = model.NewCart(currency)
		next.AppliedPromoCode = ""
		next.IsPromoCodeValid = false
		next.PromoCodeError = ""
		next.HasUnsavedChanges = true
		changed = true

	case RemoveCoupon:
		if next.Cart == nil {
			break
		}
		idx := next.Cart.FindCoupon(c.Code)
		if idx < 0 {
			break
		}
		next.Cart.Coupons = append(next.Cart.Coupons[:idx], next.Cart.Coupons[idx+1:]...)
		if next.AppliedPromoCode == c.Code {
			next.AppliedPromoCode = ""
			next.IsPromoCodeValid = false
		}
		next.HasUnsavedChanges = true
		changed = true

	case ApplyCoupon:
		if next.Cart == nil {
			next.Cart = model.NewCart(currency)
		}
		if idx := next.Cart.FindCoupon(c.Coupon.Code); idx >= 0 {
			next.Cart.Coupons[idx] = c.Coupon
		} else {
			next.Cart.Coupons = append(next.Cart.Coupons, c.Coupon)
		}
		next.AppliedPromoCode = c.Coupon.Code
		next.IsPromoCodeValid = true
		next.PromoCodeError = ""
		next.HasUnsavedChanges = true
		changed = true

	case SelectShipping:
		if next.Cart == nil {
			next.Cart = model.NewCart(currency)
		}
		next.Cart.SelectedShipping = c.Option
		next.HasUnsavedChanges = true
		changed = true

	case MarkConverted:
		if next.Cart == nil {
			break
		}
		next.Cart.ConvertedToOrder = true
		changed = true
	}

	if changed && next.Cart != nil {
		next.Cart.UpdatedAt = now
		calc.Recalculate(next.Cart)
	}

	return next
}

// removeItem filters an item out of the cart by id. It reports whether the
// cart changed.
func removeItem(s *State, itemID uuid.UUID) bool {
	if s.Cart == nil {
		return false
	}
	idx := s.Cart.FindItem(itemID)
	if idx < 0 {
		return false
	}
	s.Cart.Items = append(s.Cart.Items[:idx], s.Cart.Items[idx+1:]...)
	s.HasUnsavedChanges = true
	return true
}
