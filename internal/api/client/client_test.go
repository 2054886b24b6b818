package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/sorare-listing-bot/internal/api/handlers"
	"github.com/donaldgifford/sorare-listing-bot/internal/sorare"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.Ready(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bot status server not running")
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Ready(context.Background())
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestClient_Ready(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		wantReady bool
	}{
		{name: "ready", status: http.StatusOK, wantReady: true},
		{name: "not authenticated", status: http.StatusServiceUnavailable, wantReady: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/readyz", r.URL.Path)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			ready, err := New(srv.URL + "/").Ready(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantReady, ready)
		})
	}
}

func TestClient_LastListings(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	body := handlers.LastListingsResponse{
		CompletedAt: at,
		Listings: []handlers.ListingView{{
			Listing: sorare.Listing{Slug: "a-1", PlayerName: "A", PriceAmount: "1", PriceCurrency: "EUR"},
			URL:     "https://sorare.com/cards/a-1",
		}},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/listings", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	resp, ok, err := New(srv.URL).LastListings(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, resp.Listings, 1)
	assert.Equal(t, "A", resp.Listings[0].PlayerName)
	assert.True(t, at.Equal(resp.CompletedAt))
}

func TestClient_LastListings_NoCycleYet(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	resp, ok, err := New(srv.URL).LastListings(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, resp)
}

func TestClient_WithHTTPClient(t *testing.T) {
	t.Parallel()

	hc := &http.Client{Timeout: time.Second}
	c := New("http://localhost", WithHTTPClient(hc))
	assert.Same(t, hc, c.httpClient)
}
