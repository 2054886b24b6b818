// Package sorare provides a Sorare API client abstracted behind interfaces
// for testability.
package sorare

import (
	"context"
)

// Authenticator exchanges account credentials for a Session.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*Session, error)
}

// ListingFetcher returns the most recently listed cards.
type ListingFetcher interface {
	FetchListings(ctx context.Context, s *Session) ([]Listing, error)
}
