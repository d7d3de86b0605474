package cart

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"shopfront/internal/model"
	"shopfront/internal/pricing"
	"shopfront/internal/promo"
	"shopfront/internal/remote"
	"shopfront/internal/storage"
)

// Engine serializes cart mutations. Each dispatched command runs transition,
// totals recomputation and snapshot persistence to completion before the
// next is processed. The async operations only take the lock at their
// terminal phase, so synchronous mutations interleave freely while a sync or
// promo validation is in flight; the resolution applies against whatever
// state is current at completion time (last-writer-wins, no version check).
type Engine struct {
	mu        sync.Mutex
	state     State
	calc      *pricing.Calculator
	store     storage.Store
	validator promo.Validator
	client    remote.Client
	currency  string
	logger    zerolog.Logger
}

// NewEngine creates a cart engine, restoring any persisted snapshot. A
// missing or corrupt snapshot starts the session with no cart; the first
// mutation or an explicit Initialize creates one.
func NewEngine(
	store storage.Store,
	validator promo.Validator,
	client remote.Client,
	calc *pricing.Calculator,
	currency string,
	logger zerolog.Logger,
) *Engine {
	e := &Engine{
		calc:      calc,
		store:     store,
		validator: validator,
		client:    client,
		currency:  currency,
		logger:    logger.With().Str("component", "cart-engine").Logger(),
	}

	var cart model.Cart
	if store.Load(storage.KeyCart, &cart) {
		e.state.Cart = &cart
		e.logger.Info().
			Str("cart_id", cart.ID.String()).
			Int("items", len(cart.Items)).
			Msg("cart restored from snapshot")
	}

	return e
}

// Dispatch applies a command and persists the resulting cart. It returns a
// snapshot of the new state.
func (e *Engine) Dispatch(cmd Command) State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dispatchLocked(cmd)
}

func (e *Engine) dispatchLocked(cmd Command) State {
	e.state = Apply(e.state, cmd, e.calc, e.currency)
	e.persistLocked()
	return e.snapshotLocked()
}

// persistLocked writes the current cart snapshot; failures never propagate.
func (e *Engine) persistLocked() {
	if e.state.Cart != nil {
		e.store.Save(storage.KeyCart, e.state.Cart)
	}
}

// snapshotLocked copies the state so callers never alias engine internals.
func (e *Engine) snapshotLocked() State {
	snapshot := e.state
	snapshot.Cart = e.state.Cart.Clone()
	return snapshot
}

// State returns a snapshot of the engine state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// ItemCount returns the summed quantity across all cart items.
func (e *Engine) ItemCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Cart == nil {
		return 0
	}
	return e.state.Cart.ItemCount()
}

// Totals returns the current derived totals. An absent cart reports
// all-zero totals.
func (e *Engine) Totals() model.Totals {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Cart == nil {
		return model.ZeroTotals(e.currency)
	}
	return e.state.Cart.Totals
}

// IsEmpty reports whether the cart has no items. An absent cart is empty.
func (e *Engine) IsEmpty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Cart == nil || e.state.Cart.IsEmpty()
}

// HasCoupon reports whether a coupon with the given code is applied.
func (e *Engine) HasCoupon(code string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Cart != nil && e.state.Cart.FindCoupon(code) >= 0
}

// SyncWithServer replaces the local cart with the server-side cart for the
// user. On failure the local cart is left untouched and the error is
// surfaced in state. At-most-one-in-flight is a caller contract tracked via
// MergeInProgress; a second concurrent call is logged but not blocked.
func (e *Engine) SyncWithServer(ctx context.Context, userID string) error {
	e.mu.Lock()
	if e.state.MergeInProgress {
		e.logger.Warn().Str("user_id", userID).Msg("cart sync already in flight")
	}
	e.state.MergeInProgress = true
	e.state.IsLoading = true
	e.mu.Unlock()

	cart, err := e.client.FetchCart(ctx, userID)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.MergeInProgress = false
	e.state.IsLoading = false

	if err != nil {
		e.state.Error = err.Error()
		e.logger.Error().Err(err).Str("user_id", userID).Msg("cart sync failed")
		return err
	}

	// Last-writer-wins: the server cart overwrites whatever is locally
	// current at resolution time.
	e.state.Cart = cart
	e.calc.Recalculate(e.state.Cart)
	e.state.HasUnsavedChanges = false
	e.state.Error = ""
	e.persistLocked()

	e.logger.Info().
		Str("user_id", userID).
		Str("cart_id", cart.ID.String()).
		Int("items", len(cart.Items)).
		Msg("cart synced with server")

	return nil
}

// ApplyPromoCode validates a code and, when valid, applies a coupon whose
// discount amount is frozen against the subtotal and shipping current at
// resolution time. An invalid code sets PromoCodeError and leaves the cart
// unchanged.
func (e *Engine) ApplyPromoCode(ctx context.Context, code string) error {
	e.mu.Lock()
	e.state.IsLoading = true
	e.mu.Unlock()

	rule, err := e.validator.Validate(ctx, code)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.IsLoading = false

	if err != nil {
		e.state.PromoCodeError = err.Error()
		e.state.IsPromoCodeValid = false
		e.logger.Warn().Str("promo_code", code).Err(err).Msg("invalid promo code")
		return err
	}

	if e.state.Cart == nil {
		e.state = Apply(e.state, Initialize{}, e.calc, e.currency)
	}

	coupon := model.CartCoupon{
		Code:        code,
		Type:        rule.Type,
		Value:       rule.Value,
		Description: rule.Description,
		DiscountAmount: pricing.CouponDiscount(
			rule.Type,
			rule.Value,
			e.state.Cart.Totals.Subtotal,
			e.state.Cart.Totals.ShippingTotal,
		),
		AppliedAt: time.Now(),
	}

	e.state = Apply(e.state, ApplyCoupon{Coupon: coupon}, e.calc, e.currency)
	e.persistLocked()

	e.logger.Info().
		Str("promo_code", code).
		Str("discount", coupon.DiscountAmount.String()).
		Msg("promo code applied")

	return nil
}

// Currency returns the engine's configured currency code.
func (e *Engine) Currency() string {
	return e.currency
}

// DiscountTotal returns the current derived discount total.
func (e *Engine) DiscountTotal() decimal.Decimal {
	return e.Totals().DiscountTotal
}
