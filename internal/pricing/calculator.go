// Package pricing derives cart totals from item and coupon state. All
// derivation is pure: the calculator never reads or writes anything beyond
// the aggregate handed to it.
package pricing

import (
	"github.com/shopspring/decimal"

	"shopfront/internal/model"
)

// DefaultTaxRate is the flat rate applied to the taxable amount of carts
// that contain at least one physical item.
var DefaultTaxRate = decimal.NewFromFloat(0.07)

// Round2 rounds to 2 decimal places, half away from zero. Every monetary
// rounding in the engine goes through this so figures stay reproducible.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ItemSubtotal computes unitPrice × quantity for a line item.
func ItemSubtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return Round2(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
}

// CouponDiscount derives the discount amount a coupon yields against the
// given subtotal and shipping total. The result is frozen into the coupon at
// application time; later item mutations do not resynchronize it.
func CouponDiscount(t model.CouponType, value, subtotal, shippingTotal decimal.Decimal) decimal.Decimal {
	switch t {
	case model.CouponPercentage:
		return Round2(subtotal.Mul(value).Div(decimal.NewFromInt(100)))
	case model.CouponFixed:
		if value.GreaterThan(subtotal) {
			return subtotal
		}
		return value
	case model.CouponFreeShipping:
		return shippingTotal
	default:
		return decimal.Zero
	}
}

// Calculator recomputes cart totals. A zero-value tax rate means tax-free.
type Calculator struct {
	taxRate decimal.Decimal
}

// NewCalculator creates a calculator with the given tax rate.
func NewCalculator(taxRate decimal.Decimal) *Calculator {
	return &Calculator{taxRate: taxRate}
}

// NewDefaultCalculator creates a calculator with the default tax rate.
func NewDefaultCalculator() *Calculator {
	return NewCalculator(DefaultTaxRate)
}

// Recalculate derives the totals block and the digital-only flag from the
// cart's current items, coupons and shipping selection:
//
//	subtotal      = Σ item.subtotal
//	discountTotal = Σ item.discountTotal + Σ coupon.discountAmount
//	shippingTotal = selected shipping cost, or 0
//	taxTotal      = 0 when digital-only, else round2((subtotal − discountTotal) × rate)
//	total         = max(0, subtotal − discountTotal + shippingTotal + taxTotal)
//
// An empty cart is digital-only by convention.
func (c *Calculator) Recalculate(cart *model.Cart) {
	if cart == nil {
		return
	}

	subtotal := decimal.Zero
	itemDiscounts := decimal.Zero
	digitalOnly := true
	for i := range cart.Items {
		subtotal = subtotal.Add(cart.Items[i].Subtotal)
		itemDiscounts = itemDiscounts.Add(cart.Items[i].DiscountTotal)
		if !cart.Items[i].IsDigital {
			digitalOnly = false
		}
	}

	couponDiscounts := decimal.Zero
	for i := range cart.Coupons {
		couponDiscounts = couponDiscounts.Add(cart.Coupons[i].DiscountAmount)
	}
	discountTotal := itemDiscounts.Add(couponDiscounts)

	shippingTotal := decimal.Zero
	if cart.SelectedShipping != nil {
		shippingTotal = cart.SelectedShipping.Cost
	}

	taxableAmount := subtotal.Sub(discountTotal)
	taxTotal := decimal.Zero
	if !digitalOnly {
		taxTotal = Round2(taxableAmount.Mul(c.taxRate))
	}

	total := subtotal.Sub(discountTotal).Add(shippingTotal).Add(taxTotal)
	if total.IsNegative() {
		total = decimal.Zero
	}

	cart.IsDigitalOnly = digitalOnly
	cart.Totals = model.Totals{
		Subtotal:      Round2(subtotal),
		DiscountTotal: Round2(discountTotal),
		TaxTotal:      taxTotal,
		ShippingTotal: Round2(shippingTotal),
		Total:         Round2(total),
		Currency:      cart.Totals.Currency,
	}
}
