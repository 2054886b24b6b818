package sorare

import (
	"errors"
	"strings"
)

var (
	// ErrSaltUnavailable is returned when the account salt cannot be
	// retrieved. Sign-in is never attempted without one.
	ErrSaltUnavailable = errors.New("failed to retrieve salt from Sorare API")

	// ErrNoSession is returned when a listing fetch is attempted before
	// authentication succeeded.
	ErrNoSession = errors.New("no authenticated session")
)

// AuthError reports a failed authentication attempt. Messages holds the
// application-level errors returned by the sign-in mutation, if any.
type AuthError struct {
	Messages []string
	Err      error
}

func (e *AuthError) Error() string {
	switch {
	case len(e.Messages) > 0:
		return "auth failed: " + strings.Join(e.Messages, "; ")
	case e.Err != nil:
		return "auth failed: " + e.Err.Error()
	default:
		return "auth failed"
	}
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// FetchError reports a failed listings query.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return "fetching listings: " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// GraphQLError carries the top-level errors list of a GraphQL response.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "graphql: " + strings.Join(e.Messages, "; ")
}
