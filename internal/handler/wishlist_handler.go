package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"shopfront/internal/cart"
	"shopfront/internal/model"
	"shopfront/internal/wishlist"
)

// WishlistHandler exposes the wishlist engine over HTTP. Move-to-cart
// coordination lives here: the wishlist side only ever removes the item.
type WishlistHandler struct {
	engine *wishlist.Engine
	carts  *cart.Engine
	logger zerolog.Logger
}

// NewWishlistHandler creates a new wishlist handler.
func NewWishlistHandler(engine *wishlist.Engine, carts *cart.Engine, logger zerolog.Logger) *WishlistHandler {
	return &WishlistHandler{
		engine: engine,
		carts:  carts,
		logger: logger.With().Str("handler", "wishlist").Logger(),
	}
}

// wishlistStateResponse is the read surface returned by wishlist endpoints.
type wishlistStateResponse struct {
	Wishlists         []model.Wishlist `json:"wishlists"`
	ActiveWishlistID  uuid.UUID        `json:"activeWishlistId"`
	IsLoading         bool             `json:"isLoading"`
	Error             string           `json:"error,omitempty"`
	HasUnsavedChanges bool             `json:"hasUnsavedChanges"`
}

func wishlistResponse(s wishlist.State) wishlistStateResponse {
	return wishlistStateResponse{
		Wishlists:         s.Wishlists,
		ActiveWishlistID:  s.ActiveWishlistID,
		IsLoading:         s.IsLoading,
		Error:             s.Error,
		HasUnsavedChanges: s.HasUnsavedChanges,
	}
}

// wishlistItemRequest is the payload for adding a wishlist item.
type wishlistItemRequest struct {
	ProductID string                 `json:"productId"`
	VariantID string                 `json:"variantId,omitempty"`
	Product   *model.ProductSnapshot `json:"product,omitempty"`
	Variant   *model.VariantSnapshot `json:"variant,omitempty"`
	Notes     string                 `json:"notes,omitempty"`
}

// GetAll handles GET /api/wishlists.
func (h *WishlistHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, wishlistResponse(h.engine.State()))
}

// Create handles POST /api/wishlists.
func (h *WishlistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		IsPublic bool   `json:"isPublic"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	state := h.engine.Dispatch(wishlist.Create{Name: req.Name, IsPublic: req.IsPublic})
	if state.Error == model.ErrEmptyWishlistName.Message {
		writeError(w, http.StatusBadRequest, model.ErrCodeEmptyWishlistName, state.Error, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, wishlistResponse(state))
}

// Update handles PUT /api/wishlists/{id}.
func (h *WishlistHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Name     *string `json:"name,omitempty"`
		IsPublic *bool   `json:"isPublic,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	state := h.engine.Dispatch(wishlist.Update{ID: id, Name: req.Name, IsPublic: req.IsPublic})
	if state.Error == model.ErrWishlistNotFound.Message {
		writeError(w, http.StatusNotFound, model.ErrCodeWishlistNotFound, state.Error, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, wishlistResponse(state))
}

// Delete handles DELETE /api/wishlists/{id}.
func (h *WishlistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	state := h.engine.Dispatch(wishlist.Delete{ID: id})
	writeJSON(w, http.StatusOK, wishlistResponse(state))
}

// AddItem handles POST /api/wishlists/{id}/items.
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req wishlistItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "productId is required", h.logger)
		return
	}

	state := h.engine.Dispatch(wishlist.AddItem{
		WishlistID: id,
		Item: wishlist.ItemInput{
			ProductID: req.ProductID,
			VariantID: req.VariantID,
			Product:   req.Product,
			Variant:   req.Variant,
			Notes:     req.Notes,
		},
	})
	if state.Error == model.ErrWishlistNotFound.Message {
		writeError(w, http.StatusNotFound, model.ErrCodeWishlistNotFound, state.Error, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, wishlistResponse(state))
}

// RemoveItem handles DELETE /api/wishlists/{id}/items/{itemId}.
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := h.pathID(w, r, "itemId")
	if !ok {
		return
	}

	state := h.engine.Dispatch(wishlist.RemoveItem{WishlistID: id, ItemID: itemID})
	writeJSON(w, http.StatusOK, wishlistResponse(state))
}

// MoveToCart handles POST /api/wishlists/{id}/items/{itemId}/move-to-cart.
// The item is removed from the wishlist and added to the cart at the
// snapshot price.
func (h *WishlistHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := h.pathID(w, r, "itemId")
	if !ok {
		return
	}

	list, found := h.engine.Find(id)
	if !found {
		writeError(w, http.StatusNotFound, model.ErrCodeWishlistNotFound, model.ErrWishlistNotFound.Message, h.logger)
		return
	}
	itemIdx := list.FindItem(itemID)
	if itemIdx < 0 {
		writeError(w, http.StatusNotFound, model.ErrCodeItemNotFound, model.ErrItemNotFound.Message, h.logger)
		return
	}
	item := list.Items[itemIdx]

	state := h.engine.Dispatch(wishlist.MoveToCart{WishlistID: id, ItemID: itemID})

	add := cart.AddItem{
		ProductID: item.ProductID,
		VariantID: item.VariantID,
		Quantity:  1,
		Product:   item.Product,
		Variant:   item.Variant,
	}
	if item.Variant != nil {
		add.UnitPrice = item.Variant.Price
	} else if item.Product != nil {
		add.UnitPrice = item.Product.Price
	}
	h.carts.Dispatch(add)

	writeJSON(w, http.StatusOK, wishlistResponse(state))
}

// MoveItem handles POST /api/wishlists/move.
func (h *WishlistHandler) MoveItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FromID uuid.UUID `json:"fromId"`
		ToID   uuid.UUID `json:"toId"`
		ItemID uuid.UUID `json:"itemId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	state := h.engine.Dispatch(wishlist.MoveItemBetweenLists{
		FromID: req.FromID,
		ToID:   req.ToID,
		ItemID: req.ItemID,
	})
	if state.Error == model.ErrWishlistNotFound.Message {
		writeError(w, http.StatusNotFound, model.ErrCodeWishlistNotFound, state.Error, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, wishlistResponse(state))
}

// RegenerateLink handles POST /api/wishlists/{id}/regenerate-link.
func (h *WishlistHandler) RegenerateLink(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	state := h.engine.Dispatch(wishlist.RegenerateLink{ID: id})
	writeJSON(w, http.StatusOK, wishlistResponse(state))
}

// pathID parses a uuid path segment, writing a 400 on failure.
func (h *WishlistHandler) pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := r.PathValue(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid "+name+" format", h.logger)
		return uuid.Nil, false
	}
	return id, true
}
