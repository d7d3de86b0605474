package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CouponType discriminates how a coupon's discount amount is derived.
type CouponType string

const (
	CouponPercentage   CouponType = "percentage"
	CouponFixed        CouponType = "fixed"
	CouponFreeShipping CouponType = "free_shipping"
)

// Totals holds the derived monetary summary of a cart. Every field is
// recomputed from item and coupon state after each mutation; nothing here is
// independently settable.
type Totals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	DiscountTotal decimal.Decimal `json:"discountTotal"`
	TaxTotal      decimal.Decimal `json:"taxTotal"`
	ShippingTotal decimal.Decimal `json:"shippingTotal"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
}

// ZeroTotals returns an all-zero totals block in the given currency.
func ZeroTotals(currency string) Totals {
	return Totals{
		Subtotal:      decimal.Zero,
		DiscountTotal: decimal.Zero,
		TaxTotal:      decimal.Zero,
		ShippingTotal: decimal.Zero,
		Total:         decimal.Zero,
		Currency:      currency,
	}
}

// ProductSnapshot captures the product data an item carried when it was
// added. It is display data only and never feeds back into catalog state.
type ProductSnapshot struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"imageUrl,omitempty"`
}

// VariantSnapshot captures the selected variant at add time.
type VariantSnapshot struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// CartItem is a line in the cart. A cart holds at most one item per
// (ProductID, VariantID) pair; re-adding the same pair merges quantities.
type CartItem struct {
	ID        uuid.UUID       `json:"id"`
	ProductID string          `json:"productId"`
	VariantID string          `json:"variantId,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	// Subtotal is UnitPrice × Quantity; Total is Subtotal − DiscountTotal.
	Subtotal      decimal.Decimal `json:"subtotal"`
	DiscountTotal decimal.Decimal `json:"discountTotal"`
	Total         decimal.Decimal `json:"total"`

	IsDigital        bool    `json:"isDigital"`
	RequiresShipping bool    `json:"requiresShipping"`
	IsTaxExempt      bool    `json:"isTaxExempt"`
	Weight           float64 `json:"weight,omitempty"`

	Product *ProductSnapshot `json:"product,omitempty"`
	Variant *VariantSnapshot `json:"variant,omitempty"`

	AddedAt   time.Time `json:"addedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Matches reports whether the item occupies the (productID, variantID) slot.
func (i *CartItem) Matches(productID, variantID string) bool {
	return i.ProductID == productID && i.VariantID == variantID
}

// CartCoupon is a discount applied to the cart. DiscountAmount is computed
// from Type/Value against the subtotal and shipping at application time and
// is deliberately not resynchronized by later item mutations.
type CartCoupon struct {
	Code           string          `json:"code"`
	Type           CouponType      `json:"type"`
	Value          decimal.Decimal `json:"value"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Description    string          `json:"description,omitempty"`
	AppliedAt      time.Time       `json:"appliedAt"`
}

// ShippingOption is the shipping method selected for the cart; its cost
// feeds the shipping component of the totals.
type ShippingOption struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Cost decimal.Decimal `json:"cost"`
}

// Cart is the cart aggregate root. Invariants are maintained only through
// the cart engine's commands:
//   - items are unique by (ProductID, VariantID);
//   - coupons are unique by Code (case-sensitive);
//   - Totals is always derived by the pricing calculator;
//   - IsDigitalOnly is true iff every item is digital (true when empty);
//   - once ConvertedToOrder is set the cart accepts no further mutation.
type Cart struct {
	ID               uuid.UUID       `json:"id"`
	Items            []CartItem      `json:"items"`
	Coupons          []CartCoupon    `json:"coupons"`
	Totals           Totals          `json:"totals"`
	SelectedShipping *ShippingOption `json:"selectedShipping,omitempty"`
	IsDigitalOnly    bool            `json:"isDigitalOnly"`
	ConvertedToOrder bool            `json:"convertedToOrder"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// NewCart creates an empty cart with a fresh identity.
func NewCart(currency string) *Cart {
	now := time.Now()
	return &Cart{
		ID:            uuid.New(),
		Items:         []CartItem{},
		Coupons:       []CartCoupon{},
		Totals:        ZeroTotals(currency),
		IsDigitalOnly: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// FindItem returns the index of the item with the given id, or -1.
func (c *Cart) FindItem(itemID uuid.UUID) int {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// FindItemBySlot returns the index of the item occupying the
// (productID, variantID) slot, or -1.
func (c *Cart) FindItemBySlot(productID, variantID string) int {
	for i := range c.Items {
		if c.Items[i].Matches(productID, variantID) {
			return i
		}
	}
	return -1
}

// FindCoupon returns the index of the coupon with the given code, or -1.
// Codes compare case-sensitively.
func (c *Cart) FindCoupon(code string) int {
	for i := range c.Coupons {
		if c.Coupons[i].Code == code {
			return i
		}
	}
	return -1
}

// ItemCount returns the summed quantity across all items.
func (c *Cart) ItemCount() int {
	count := 0
	for i := range c.Items {
		count += c.Items[i].Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clone returns a deep copy so transition functions can produce new state
// without aliasing the previous aggregate.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Items = make([]CartItem, len(c.Items))
	copy(clone.Items, c.Items)
	clone.Coupons = make([]CartCoupon, len(c.Coupons))
	copy(clone.Coupons, c.Coupons)
	if c.SelectedShipping != nil {
		shipping := *c.SelectedShipping
		clone.SelectedShipping = &shipping
	}
	return &clone
}
