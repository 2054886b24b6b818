package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/donaldgifford/sorare-listing-bot/internal/api/handlers"
)

// Ready reports whether the bot is authenticated. A 503 from /readyz is
// not an error.
func (c *Client) Ready(ctx context.Context) (bool, error) {
	err := c.get(ctx, "/readyz", nil)
	if err == nil {
		return true, nil
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusServiceUnavailable {
		return false, nil
	}
	return false, err
}

// LastListings returns the listings of the bot's most recent completed
// cycle. ok is false when no cycle has completed yet.
func (c *Client) LastListings(ctx context.Context) (resp *handlers.LastListingsResponse, ok bool, err error) {
	var out handlers.LastListingsResponse
	err = c.get(ctx, "/listings", &out)
	if err == nil {
		return &out, true, nil
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	return nil, false, err
}
