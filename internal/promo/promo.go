package promo

import (
	"context"

	"github.com/shopspring/decimal"

	"shopfront/internal/model"
)

// Rule describes the discount a recognised promo code yields. The engine
// freezes the computed discount amount into a cart coupon at application
// time; the rule itself carries no amounts.
type Rule struct {
	Code        string           `json:"code"`
	Type        model.CouponType `json:"type"`
	Value       decimal.Decimal  `json:"value"`
	Description string           `json:"description,omitempty"`
}

// Validator resolves promo codes against the loaded allow-list.
type Validator interface {
	// Validate checks a promo code and returns its discount rule.
	// A valid code must be within the configured length bounds and either
	// appear in the rules table or in one of the bulk code sets.
	Validate(ctx context.Context, code string) (Rule, error)

	// Close releases resources held by the validator.
	Close() error
}

// Set represents a bulk set of promo codes for fast lookup.
type Set interface {
	// Contains checks if a code exists in the set.
	Contains(code string) bool

	// Size returns the number of codes in the set.
	Size() int
}

// Loader defines the interface for loading bulk code files.
type Loader interface {
	// Load reads a gzipped code file and returns a Set.
	Load(ctx context.Context, filePath string) (Set, error)
}
