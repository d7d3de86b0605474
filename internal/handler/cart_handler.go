package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"shopfront/internal/cart"
	"shopfront/internal/model"
	"shopfront/internal/wishlist"
)

// CartHandler exposes the cart engine over HTTP. The move-to-wishlist
// coordination between the two engines lives here: the cart side only ever
// removes the item.
type CartHandler struct {
	engine    *cart.Engine
	wishlists *wishlist.Engine
	logger    zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(engine *cart.Engine, wishlists *wishlist.Engine, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		engine:    engine,
		wishlists: wishlists,
		logger:    logger.With().Str("handler", "cart").Logger(),
	}
}

// cartStateResponse is the read surface returned by every cart endpoint.
type cartStateResponse struct {
	Cart              *model.Cart `json:"cart"`
	IsLoading         bool        `json:"isLoading"`
	Error             string      `json:"error,omitempty"`
	MergeInProgress   bool        `json:"mergeInProgress"`
	HasUnsavedChanges bool        `json:"hasUnsavedChanges"`
	AppliedPromoCode  string      `json:"appliedPromoCode,omitempty"`
	IsPromoCodeValid  bool        `json:"isPromoCodeValid"`
	PromoCodeError    string      `json:"promoCodeError,omitempty"`
	ItemCount         int         `json:"itemCount"`
	IsEmpty           bool        `json:"isEmpty"`
}

func cartResponse(s cart.State) cartStateResponse {
	resp := cartStateResponse{
		Cart:              s.Cart,
		IsLoading:         s.IsLoading,
		Error:             s.Error,
		MergeInProgress:   s.MergeInProgress,
		HasUnsavedChanges: s.HasUnsavedChanges,
		AppliedPromoCode:  s.AppliedPromoCode,
		IsPromoCodeValid:  s.IsPromoCodeValid,
		PromoCodeError:    s.PromoCodeError,
		IsEmpty:           true,
	}
	if s.Cart != nil {
		resp.ItemCount = s.Cart.ItemCount()
		resp.IsEmpty = s.Cart.IsEmpty()
	}
	return resp
}

// addItemRequest is the payload for POST /api/cart/items.
type addItemRequest struct {
	ProductID        string                 `json:"productId"`
	VariantID        string                 `json:"variantId,omitempty"`
	Quantity         int                    `json:"quantity"`
	UnitPrice        decimal.Decimal        `json:"unitPrice"`
	DiscountTotal    decimal.Decimal        `json:"discountTotal"`
	IsDigital        bool                   `json:"isDigital"`
	RequiresShipping bool                   `json:"requiresShipping"`
	IsTaxExempt      bool                   `json:"isTaxExempt"`
	Weight           float64                `json:"weight,omitempty"`
	Product          *model.ProductSnapshot `json:"product,omitempty"`
	Variant          *model.VariantSnapshot `json:"variant,omitempty"`
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, cartResponse(h.engine.State()))
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "productId is required", h.logger)
		return
	}
	if req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidQuantity, model.ErrInvalidQuantity.Message, h.logger)
		return
	}

	state := h.engine.Dispatch(cart.AddItem{
		ProductID:        req.ProductID,
		VariantID:        req.VariantID,
		Quantity:         req.Quantity,
		UnitPrice:        req.UnitPrice,
		DiscountTotal:    req.DiscountTotal,
		IsDigital:        req.IsDigital,
		RequiresShipping: req.RequiresShipping,
		IsTaxExempt:      req.IsTaxExempt,
		Weight:           req.Weight,
		Product:          req.Product,
		Variant:          req.Variant,
	})
	writeJSON(w, http.StatusOK, cartResponse(state))
}

// UpdateItem handles PUT /api/cart/items/{id}.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	state := h.engine.Dispatch(cart.UpdateItemQuantity{ItemID: itemID, Quantity: req.Quantity})
	writeJSON(w, http.StatusOK, cartResponse(state))
}

// RemoveItem handles DELETE /api/cart/items/{id}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	state := h.engine.Dispatch(cart.RemoveItem{ItemID: itemID})
	writeJSON(w, http.StatusOK, cartResponse(state))
}

// MoveToWishlist handles POST /api/cart/items/{id}/move-to-wishlist. The
// item is removed from the cart and added to the targeted (or active)
// wishlist.
func (h *CartHandler) MoveToWishlist(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		WishlistID uuid.UUID `json:"wishlistId,omitempty"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
			return
		}
	}

	state := h.engine.State()
	var item *model.CartItem
	if state.Cart != nil {
		if idx := state.Cart.FindItem(itemID); idx >= 0 {
			item = &state.Cart.Items[idx]
		}
	}
	if item == nil {
		writeError(w, http.StatusNotFound, model.ErrCodeItemNotFound, model.ErrItemNotFound.Message, h.logger)
		return
	}

	next := h.engine.Dispatch(cart.MoveToWishlist{ItemID: itemID})
	h.wishlists.Dispatch(wishlist.AddItem{
		WishlistID: req.WishlistID,
		Item: wishlist.ItemInput{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Product:   item.Product,
			Variant:   item.Variant,
		},
	})
	writeJSON(w, http.StatusOK, cartResponse(next))
}

// SaveForLater handles POST /api/cart/items/{id}/save-for-later. The
// cart-side effect is identical to removal; the saved-items list is managed
// by the caller.
func (h *CartHandler) SaveForLater(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	state := h.engine.Dispatch(cart.SaveForLater{ItemID: itemID})
	writeJSON(w, http.StatusOK, cartResponse(state))
}

// Clear handles POST /api/cart/clear.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	state := h.engine.Dispatch(cart.Clear{})
	writeJSON(w, http.StatusOK, cartResponse(state))
}

// ApplyPromo handles POST /api/cart/promo.
func (h *CartHandler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "code is required", h.logger)
		return
	}

	if err := h.engine.ApplyPromoCode(r.Context(), req.Code); err != nil {
		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			writeError(w, statusForDomainError(domainErr), domainErr.Code, domainErr.Message, h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to apply promo code", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cartResponse(h.engine.State()))
}

// RemovePromo handles DELETE /api/cart/promo/{code}.
func (h *CartHandler) RemovePromo(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "code is required", h.logger)
		return
	}

	state := h.engine.Dispatch(cart.RemoveCoupon{Code: code})
	writeJSON(w, http.StatusOK, cartResponse(state))
}

// Sync handles POST /api/cart/sync.
func (h *CartHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "userId is required", h.logger)
		return
	}

	if err := h.engine.SyncWithServer(r.Context(), req.UserID); err != nil {
		writeError(w, http.StatusBadGateway, model.ErrCodeSyncFailed, model.ErrSyncFailed.Message, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cartResponse(h.engine.State()))
}

// SelectShipping handles POST /api/cart/shipping.
func (h *CartHandler) SelectShipping(w http.ResponseWriter, r *http.Request) {
	var req model.ShippingOption
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	state := h.engine.Dispatch(cart.SelectShipping{Option: &req})
	writeJSON(w, http.StatusOK, cartResponse(state))
}

// Convert handles POST /api/cart/convert, closing the cart.
func (h *CartHandler) Convert(w http.ResponseWriter, r *http.Request) {
	state := h.engine.Dispatch(cart.MarkConverted{})
	writeJSON(w, http.StatusOK, cartResponse(state))
}

// pathID parses a uuid path segment, writing a 400 on failure.
func (h *CartHandler) pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := r.PathValue(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid "+name+" format", h.logger)
		return uuid.Nil, false
	}
	return id, true
}
