package promo

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"shopfront/internal/model"
)

// validator implements Validator against a rules table plus optional bulk
// code sets.
type validator struct {
	rules  map[string]Rule
	sets   []Set
	min    int
	max    int
	logger zerolog.Logger
	// No mutex needed - rules and sets are read-only after initialization
}

// ValidatorConfig holds configuration for the promo validator.
type ValidatorConfig struct {
	// RulesPath is an optional JSON rules file extending the built-in table.
	RulesPath string

	// FilePaths is the list of bulk code files to load.
	FilePaths []string

	// MinLength and MaxLength bound acceptable code lengths.
	MinLength int
	MaxLength int
}

// DefaultValidatorConfig returns the default validator configuration.
func DefaultValidatorConfig() *ValidatorConfig {
	return &ValidatorConfig{
		MinLength: 4,
		MaxLength: 16,
	}
}

// NewValidator creates a new promo validator. Rules and all bulk code files
// are loaded at initialization time.
func NewValidator(ctx context.Context, config *ValidatorConfig, loader Loader, logger zerolog.Logger) (Validator, error) {
	if config == nil {
		config = DefaultValidatorConfig()
	}

	logger = logger.With().Str("component", "promo-validator").Logger()

	rules := DefaultRules()
	if config.RulesPath != "" {
		loaded, err := LoadRules(config.RulesPath)
		if err != nil {
			logger.Error().Err(err).Str("file", config.RulesPath).Msg("failed to load promo rules")
			return nil, fmt.Errorf("failed to load promo rules: %w", err)
		}
		for code, rule := range loaded {
			rules[code] = rule
		}
	}

	v := &validator{
		rules:  rules,
		sets:   make([]Set, 0, len(config.FilePaths)),
		min:    config.MinLength,
		max:    config.MaxLength,
		logger: logger,
	}

	// Load all bulk code files concurrently
	type loadResult struct {
		index int
		set   Set
		err   error
	}

	resultChan := make(chan loadResult, len(config.FilePaths))
	var wg sync.WaitGroup

	for i, filePath := range config.FilePaths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			set, err := loader.Load(ctx, path)
			resultChan <- loadResult{
				index: index,
				set:   set,
				err:   err,
			}
		}(i, filePath)
	}

	wg.Wait()
	close(resultChan)

	// Collect results in order
	results := make([]loadResult, len(config.FilePaths))
	for result := range resultChan {
		results[result.index] = result
	}

	for i, result := range results {
		if result.err != nil {
			logger.Error().
				Err(result.err).
				Str("file", config.FilePaths[i]).
				Msg("failed to load promo code file")
			return nil, fmt.Errorf("failed to load promo code file %s: %w", config.FilePaths[i], result.err)
		}
		v.sets = append(v.sets, result.set)
	}

	totalBulk := 0
	for _, set := range v.sets {
		totalBulk += set.Size()
	}

	logger.Info().
		Int("rules", len(rules)).
		Int("bulk_codes", totalBulk).
		Msg("promo validator initialised successfully")

	return v, nil
}

// Validate checks a promo code and returns its discount rule. A valid code
// must be within the configured length bounds and either appear in the rules
// table or in one of the bulk code sets.
func (v *validator) Validate(ctx context.Context, code string) (Rule, error) {
	// Validate length first (cheap check)
	if len(code) < v.min || len(code) > v.max {
		v.logger.Debug().
			Str("promo_code", code).
			Int("length", len(code)).
			Msg("promo code length invalid")
		return Rule{}, model.ErrInvalidPromoLength
	}

	if rule, ok := v.rules[code]; ok {
		v.logger.Debug().Str("promo_code", code).Msg("promo code matched rules table")
		return rule, nil
	}

	for _, set := range v.sets {
		select {
		case <-ctx.Done():
			return Rule{}, ctx.Err()
		default:
		}
		if set.Contains(code) {
			v.logger.Debug().Str("promo_code", code).Msg("promo code matched bulk set")
			return BulkRule(code), nil
		}
	}

	v.logger.Debug().Str("promo_code", code).Msg("promo code not recognised")
	return Rule{}, model.ErrInvalidPromoCode
}

// Close releases resources held by the validator.
func (v *validator) Close() error {
	// Clear sets to allow GC to reclaim memory
	v.sets = nil
	v.rules = nil

	v.logger.Info().Msg("promo validator closed")

	return nil
}
