package sorare_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/sorare-listing-bot/internal/sorare"
)

var testSession = &sorare.Session{Token: "jwt-abc", Audience: "sorare-bot"}

const cardsJSON = `{
  "data": {
    "football": {
      "cards": {
        "nodes": [
          {
            "slug": "kylian-mbappe-2024-limited-42",
            "player": {"displayName": "Kylian Mbappé"},
            "saleOffers": {"edges": [{"node": {"price": {"amount": "1000000", "currency": "WEI"}}}]}
          },
          {
            "slug": "erling-haaland-2024-rare-7",
            "player": {"displayName": "Erling Haaland"},
            "saleOffers": {"edges": []}
          },
          {
            "slug": "jude-bellingham-2024-limited-3",
            "player": {"displayName": "Jude Bellingham"},
            "saleOffers": {"edges": [{"node": {"price": {"amount": 2500, "currency": "EUR"}}}]}
          }
        ]
      }
    }
  }
}`

func newCardsServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func newCardsClient(srv *httptest.Server, opts ...sorare.CardsOption) *sorare.CardsClient {
	opts = append([]sorare.CardsOption{
		sorare.WithGraphQLURL(srv.URL),
		sorare.WithCardsHTTPClient(srv.Client()),
		sorare.WithLogger(quietLogger()),
	}, opts...)
	return sorare.NewCardsClient(opts...)
}

func TestCardsClient_FetchListings(t *testing.T) {
	t.Parallel()

	srv := newCardsServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer jwt-abc", r.Header.Get("Authorization"))
		assert.Equal(t, "sorare-bot", r.Header.Get("JWT-AUD"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			Query string `json:"query"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body.Query, "cards(first: 5, listed: true)")
		assert.Contains(t, body.Query, "saleOffers(first: 1)")

		_, _ = w.Write([]byte(cardsJSON))
	})

	listings, err := newCardsClient(srv).FetchListings(context.Background(), testSession)
	require.NoError(t, err)

	want := []sorare.Listing{
		{
			Slug:          "kylian-mbappe-2024-limited-42",
			PlayerName:    "Kylian Mbappé",
			PriceAmount:   "1000000",
			PriceCurrency: "WEI",
		},
		{
			Slug:          "erling-haaland-2024-rare-7",
			PlayerName:    "Erling Haaland",
			PriceAmount:   sorare.NotAvailable,
			PriceCurrency: sorare.NotAvailable,
		},
		{
			Slug:          "jude-bellingham-2024-limited-3",
			PlayerName:    "Jude Bellingham",
			PriceAmount:   "2500",
			PriceCurrency: "EUR",
		},
	}
	assert.Equal(t, want, listings)
}

func TestCardsClient_FetchListings_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		errContain string
	}{
		{
			name: "expired token is reported as a fetch failure",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
			},
			errContain: "status 401",
		},
		{
			name: "graphql errors",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"errors":[{"message":"Query too complex"}]}`))
			},
			errContain: "Query too complex",
		},
		{
			name: "invalid JSON",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("<html>"))
			},
			errContain: "parsing graphql response",
		},
		{
			name: "card without player",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"data":{"football":{"cards":{"nodes":[{"slug":"orphan","player":null}]}}}}`))
			},
			errContain: `card "orphan" has no player`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := newCardsServer(t, tt.handler)

			listings, err := newCardsClient(srv).FetchListings(context.Background(), testSession)
			require.Error(t, err)
			assert.Nil(t, listings)

			var fetchErr *sorare.FetchError
			require.ErrorAs(t, err, &fetchErr)
			assert.Contains(t, err.Error(), tt.errContain)
		})
	}
}

func TestCardsClient_FetchListings_NoSession(t *testing.T) {
	t.Parallel()

	c := sorare.NewCardsClient(sorare.WithGraphQLURL("http://127.0.0.1:1"))

	_, err := c.FetchListings(context.Background(), nil)
	require.ErrorIs(t, err, sorare.ErrNoSession)
}

func TestCardsClient_FetchListings_NetworkError(t *testing.T) {
	t.Parallel()

	c := sorare.NewCardsClient(
		sorare.WithGraphQLURL("http://127.0.0.1:1"), // nothing listening
		sorare.WithLogger(quietLogger()),
	)

	_, err := c.FetchListings(context.Background(), testSession)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executing graphql request")
}

func TestCardsClient_FetchListings_EmptyResult(t *testing.T) {
	t.Parallel()

	srv := newCardsServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"football":{"cards":{"nodes":[]}}}}`))
	})

	listings, err := newCardsClient(srv).FetchListings(context.Background(), testSession)
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestCardsClient_FetchListings_LogsRawResponseAtDebug(t *testing.T) {
	t.Parallel()

	srv := newCardsServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(cardsJSON))
	})

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := newCardsClient(srv, sorare.WithLogger(logger)).FetchListings(context.Background(), testSession)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "listed cards response")
	assert.Contains(t, out, "kylian-mbappe-2024-limited-42")
	assert.Contains(t, out, "jude-bellingham-2024-limited-3")
}

func TestCardsClient_WithRateLimiter_CanceledContext(t *testing.T) {
	t.Parallel()

	srv := newCardsServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(cardsJSON))
	})

	// A burst of 1 with a negligible rate leaves no tokens after the first call.
	c := newCardsClient(srv, sorare.WithRateLimiter(sorare.NewRateLimiter(0.0001, 1)))

	_, err := c.FetchListings(context.Background(), testSession)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.FetchListings(ctx, testSession)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}
