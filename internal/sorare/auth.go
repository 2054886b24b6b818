package sorare

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultAPIURL   = "https://api.sorare.com"
	defaultAudience = "sorare-bot"
)

const signInMutation = `mutation SignIn($input: signInInput!, $aud: String!) {
  signIn(input: $input) {
    jwtToken(aud: $aud) { token }
    errors { message }
  }
}`

// PasswordAuthenticator implements Authenticator using the Sorare salt
// handshake: fetch the account salt, bcrypt the password with it and
// exchange the hash for a JWT through the SignIn mutation. It never
// retries.
type PasswordAuthenticator struct {
	apiURL   string
	audience string
	client   *http.Client
	graphql  *graphQLClient
}

// AuthOption configures the PasswordAuthenticator.
type AuthOption func(*PasswordAuthenticator)

// WithAPIURL overrides the REST base URL used for salt retrieval.
func WithAPIURL(u string) AuthOption {
	return func(a *PasswordAuthenticator) {
		a.apiURL = strings.TrimRight(u, "/")
	}
}

// WithSignInURL overrides the GraphQL endpoint used for the SignIn mutation.
func WithSignInURL(u string) AuthOption {
	return func(a *PasswordAuthenticator) {
		a.graphql.url = u
	}
}

// WithAudience overrides the JWT audience tag.
func WithAudience(aud string) AuthOption {
	return func(a *PasswordAuthenticator) {
		a.audience = aud
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) AuthOption {
	return func(a *PasswordAuthenticator) {
		a.client = c
		a.graphql.client = c
	}
}

// NewPasswordAuthenticator creates a new Sorare authenticator.
func NewPasswordAuthenticator(opts ...AuthOption) *PasswordAuthenticator {
	hc := &http.Client{Timeout: 30 * time.Second}
	a := &PasswordAuthenticator{
		apiURL:   defaultAPIURL,
		audience: defaultAudience,
		client:   hc,
		graphql: &graphQLClient{
			url:    defaultGraphQLURL,
			client: hc,
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Audience returns the JWT audience tag sent with sign-in.
func (a *PasswordAuthenticator) Audience() string {
	return a.audience
}

// Salt retrieves the bcrypt salt registered for email. Every failure wraps
// ErrSaltUnavailable.
func (a *PasswordAuthenticator) Salt(ctx context.Context, email string) (string, error) {
	u := a.apiURL + "/api/v1/users/" + url.PathEscape(email)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("%w: creating salt request: %w", ErrSaltUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: executing salt request: %w", ErrSaltUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading salt response: %w", ErrSaltUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", ErrSaltUnavailable, resp.StatusCode)
	}

	var sr saltResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return "", fmt.Errorf("%w: parsing salt response: %w", ErrSaltUnavailable, err)
	}

	if sr.Salt == "" {
		return "", fmt.Errorf("%w: response has no salt", ErrSaltUnavailable)
	}

	return sr.Salt, nil
}

// Authenticate implements Authenticator. All failures are *AuthError.
func (a *PasswordAuthenticator) Authenticate(
	ctx context.Context,
	email, password string,
) (*Session, error) {
	salt, err := a.Salt(ctx, email)
	if err != nil {
		return nil, &AuthError{Err: err}
	}

	hashed, err := HashPassword(password, salt)
	if err != nil {
		return nil, &AuthError{Err: fmt.Errorf("hashing password: %w", err)}
	}

	req := graphQLRequest{
		Query:         signInMutation,
		OperationName: "SignIn",
		Variables: map[string]any{
			"input": map[string]string{
				"email":    email,
				"password": hashed,
			},
			"aud": a.audience,
		},
	}

	var data signInData
	if err := a.graphql.do(ctx, req, nil, &data); err != nil {
		var gqlErr *GraphQLError
		if errors.As(err, &gqlErr) {
			return nil, &AuthError{Messages: gqlErr.Messages, Err: err}
		}
		return nil, &AuthError{Err: fmt.Errorf("sign-in request: %w", err)}
	}

	if len(data.SignIn.Errors) > 0 {
		msgs := make([]string, 0, len(data.SignIn.Errors))
		for _, e := range data.SignIn.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, &AuthError{Messages: msgs}
	}

	if data.SignIn.JWTToken == nil || data.SignIn.JWTToken.Token == "" {
		return nil, &AuthError{Err: errors.New("sign-in response carried no token")}
	}

	return &Session{
		Token:    data.SignIn.JWTToken.Token,
		Audience: a.audience,
	}, nil
}
