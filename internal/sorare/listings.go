package sorare

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// listedCardsQuery requests the five most recently listed football cards
// with the first sale offer of each.
const listedCardsQuery = `query ListedCards {
  football {
    cards(first: 5, listed: true) {
      nodes {
        slug
        player {
          displayName
        }
        saleOffers(first: 1) {
          edges {
            node {
              price {
                amount
                currency
              }
            }
          }
        }
      }
    }
  }
}`

// CardsClient implements ListingFetcher using the Sorare GraphQL API.
type CardsClient struct {
	graphql *graphQLClient
	log     *slog.Logger
}

// CardsOption configures the CardsClient.
type CardsOption func(*CardsClient)

// WithGraphQLURL overrides the default GraphQL endpoint.
func WithGraphQLURL(u string) CardsOption {
	return func(c *CardsClient) {
		c.graphql.url = u
	}
}

// WithCardsHTTPClient overrides the default HTTP client.
func WithCardsHTTPClient(hc *http.Client) CardsOption {
	return func(c *CardsClient) {
		c.graphql.client = hc
	}
}

// WithRateLimiter injects a rate limiter consulted before every query.
func WithRateLimiter(r *RateLimiter) CardsOption {
	return func(c *CardsClient) {
		c.graphql.rateLimiter = r
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) CardsOption {
	return func(c *CardsClient) {
		c.log = l
	}
}

// NewCardsClient creates a new listings client.
func NewCardsClient(opts ...CardsOption) *CardsClient {
	c := &CardsClient{
		graphql: &graphQLClient{
			url:    defaultGraphQLURL,
			client: &http.Client{Timeout: 30 * time.Second},
		},
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchListings implements ListingFetcher. Results keep the API order and
// are neither sorted nor deduplicated. All failures are *FetchError.
func (c *CardsClient) FetchListings(ctx context.Context, s *Session) ([]Listing, error) {
	if s == nil {
		return nil, &FetchError{Err: ErrNoSession}
	}

	req := graphQLRequest{
		Query:         listedCardsQuery,
		OperationName: "ListedCards",
	}

	var raw json.RawMessage
	if err := c.graphql.do(ctx, req, s, &raw); err != nil {
		return nil, &FetchError{Err: err}
	}

	c.log.Debug("listed cards response", "data", string(raw))

	var data cardsData
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, &FetchError{Err: fmt.Errorf("decoding listed cards: %w", err)}
		}
	}

	listings, err := toListings(data.Football.Cards.Nodes)
	if err != nil {
		return nil, &FetchError{Err: err}
	}

	return listings, nil
}
