package router

import (
	"net/http"

	"github.com/rs/zerolog"

	"shopfront/internal/handler"
	"shopfront/internal/middleware"
)

// New creates the HTTP router with all routes and middleware configured.
func New(
	cartHandler *handler.CartHandler,
	wishlistHandler *handler.WishlistHandler,
	searchHandler *handler.SearchHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Cart routes
	mux.HandleFunc("GET /api/cart", cartHandler.Get)
	mux.HandleFunc("POST /api/cart/items", cartHandler.AddItem)
	mux.HandleFunc("PUT /api/cart/items/{id}", cartHandler.UpdateItem)
	mux.HandleFunc("DELETE /api/cart/items/{id}", cartHandler.RemoveItem)
	mux.HandleFunc("POST /api/cart/items/{id}/move-to-wishlist", cartHandler.MoveToWishlist)
	mux.HandleFunc("POST /api/cart/items/{id}/save-for-later", cartHandler.SaveForLater)
	mux.HandleFunc("POST /api/cart/clear", cartHandler.Clear)
	mux.HandleFunc("POST /api/cart/promo", cartHandler.ApplyPromo)
	mux.HandleFunc("DELETE /api/cart/promo/{code}", cartHandler.RemovePromo)
	mux.HandleFunc("POST /api/cart/sync", cartHandler.Sync)
	mux.HandleFunc("POST /api/cart/shipping", cartHandler.SelectShipping)
	mux.HandleFunc("POST /api/cart/convert", cartHandler.Convert)

	// Wishlist routes
	mux.HandleFunc("GET /api/wishlists", wishlistHandler.GetAll)
	mux.HandleFunc("POST /api/wishlists", wishlistHandler.Create)
	mux.HandleFunc("PUT /api/wishlists/{id}", wishlistHandler.Update)
	mux.HandleFunc("DELETE /api/wishlists/{id}", wishlistHandler.Delete)
	mux.HandleFunc("POST /api/wishlists/{id}/items", wishlistHandler.AddItem)
	mux.HandleFunc("DELETE /api/wishlists/{id}/items/{itemId}", wishlistHandler.RemoveItem)
	mux.HandleFunc("POST /api/wishlists/{id}/items/{itemId}/move-to-cart", wishlistHandler.MoveToCart)
	mux.HandleFunc("POST /api/wishlists/move", wishlistHandler.MoveItem)
	mux.HandleFunc("POST /api/wishlists/{id}/regenerate-link", wishlistHandler.RegenerateLink)

	// Search history routes
	mux.HandleFunc("GET /api/search/history", searchHandler.Recent)
	mux.HandleFunc("POST /api/search/history", searchHandler.Record)
	mux.HandleFunc("DELETE /api/search/history", searchHandler.Clear)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.RequestID(h)
	h = middleware.Recovery(logger)(h)

	return h
}
