// Package remote is the boundary to the server-side cart collaborator. The
// engines depend only on the Client interface; the transport behind it is
// opaque to them.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"shopfront/internal/model"
)

// Client fetches the server-side cart for a user.
type Client interface {
	// FetchCart returns the authoritative server cart for the user, or an
	// error describing why the sync cannot proceed.
	FetchCart(ctx context.Context, userID string) (*model.Cart, error)
}

// httpClient implements Client over a JSON HTTP endpoint.
type httpClient struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewHTTPClient creates an HTTP-backed client rooted at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration, logger zerolog.Logger) Client {
	return &httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With().Str("component", "remote-client").Logger(),
	}
}

// FetchCart issues GET {baseURL}/api/users/{userID}/cart and decodes the
// response body as a full cart aggregate.
func (c *httpClient) FetchCart(ctx context.Context, userID string) (*model.Cart, error) {
	endpoint := fmt.Sprintf("%s/api/users/%s/cart", c.baseURL, url.PathEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build cart sync request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("user_id", userID).Msg("cart sync request failed")
		return nil, fmt.Errorf("cart sync request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("user_id", userID).
			Msg("cart sync returned non-OK status")
		return nil, fmt.Errorf("cart sync returned status %d: %w", resp.StatusCode, model.ErrSyncFailed)
	}

	var cart model.Cart
	if err := json.NewDecoder(resp.Body).Decode(&cart); err != nil {
		return nil, fmt.Errorf("failed to decode server cart: %w", err)
	}

	c.logger.Debug().
		Str("user_id", userID).
		Str("cart_id", cart.ID.String()).
		Int("items", len(cart.Items)).
		Msg("server cart fetched")

	return &cart, nil
}
