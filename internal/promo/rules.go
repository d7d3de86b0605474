package promo

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"shopfront/internal/model"
)

// DefaultRules returns the built-in allow-list of promo codes. A rules file
// can extend or override these entries.
func DefaultRules() map[string]Rule {
	return map[string]Rule{
		"SAVE10": {
			Code:        "SAVE10",
			Type:        model.CouponPercentage,
			Value:       decimal.NewFromInt(10),
			Description: "10% off your order",
		},
		"WELCOME15": {
			Code:        "WELCOME15",
			Type:        model.CouponPercentage,
			Value:       decimal.NewFromInt(15),
			Description: "15% off for new customers",
		},
		"FLAT5": {
			Code:        "FLAT5",
			Type:        model.CouponFixed,
			Value:       decimal.NewFromInt(5),
			Description: "$5 off your order",
		},
		"FREESHIP": {
			Code:        "FREESHIP",
			Type:        model.CouponFreeShipping,
			Value:       decimal.Zero,
			Description: "Free shipping",
		},
	}
}

// BulkRule is the rule applied to codes that appear in a bulk code set but
// have no dedicated entry in the rules table.
func BulkRule(code string) Rule {
	return Rule{
		Code:        code,
		Type:        model.CouponPercentage,
		Value:       decimal.NewFromInt(10),
		Description: "Promotional discount",
	}
}

// LoadRules reads a JSON rules file: an array of Rule objects keyed by code.
func LoadRules(path string) (map[string]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}

	var entries []Rule
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	rules := make(map[string]Rule, len(entries))
	for _, r := range entries {
		if r.Code == "" {
			return nil, fmt.Errorf("rules file %s contains an entry without a code", path)
		}
		rules[r.Code] = r
	}
	return rules, nil
}
