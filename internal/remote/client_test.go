package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/model"
)

func TestHTTPClient_FetchCart(t *testing.T) {
	serverCart := model.NewCart("USD")
	serverCart.Items = []model.CartItem{{
		ProductID: "p1",
		Quantity:  2,
	}}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/users/user-1/cart", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(serverCart))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 5*time.Second, zerolog.Nop())

	cart, err := client.FetchCart(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, serverCart.ID, cart.ID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p1", cart.Items[0].ProductID)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestHTTPClient_FetchCart_EscapesUserID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/user%2F1/cart", r.URL.EscapedPath())
		require.NoError(t, json.NewEncoder(w).Encode(model.NewCart("USD")))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 5*time.Second, zerolog.Nop())

	_, err := client.FetchCart(context.Background(), "user/1")

	require.NoError(t, err)
}

func TestHTTPClient_FetchCart_NonOKStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{
			name:   "Not found",
			status: http.StatusNotFound,
		},
		{
			name:   "Server error",
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewHTTPClient(server.URL, 5*time.Second, zerolog.Nop())

			_, err := client.FetchCart(context.Background(), "user-1")

			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrSyncFailed)
		})
	}
}

func TestHTTPClient_FetchCart_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 5*time.Second, zerolog.Nop())

	_, err := client.FetchCart(context.Background(), "user-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode server cart")
}

func TestHTTPClient_FetchCart_ConnectionRefused(t *testing.T) {
	client := NewHTTPClient("http://127.0.0.1:1", time.Second, zerolog.Nop())

	_, err := client.FetchCart(context.Background(), "user-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart sync request failed")
}

func TestHTTPClient_FetchCart_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 5*time.Second, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.FetchCart(ctx, "user-1")

	require.Error(t, err)
}
