package sorare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/donaldgifford/sorare-listing-bot/internal/metrics"
)

const defaultGraphQLURL = "https://api.sorare.com/graphql"

type graphQLRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// graphQLClient posts GraphQL operations over plain HTTP.
type graphQLClient struct {
	url         string
	client      *http.Client
	rateLimiter *RateLimiter
}

// do executes the operation and decodes its data into out. A session, when
// given, adds the bearer token and audience headers. Top-level GraphQL
// errors are returned as *GraphQLError.
func (g *graphQLClient) do(
	ctx context.Context,
	req graphQLRequest,
	session *Session,
	out any,
) error {
	if g.rateLimiter != nil {
		if err := g.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}

	start := time.Now()
	defer func() {
		metrics.GraphQLRequestDuration.
			WithLabelValues(req.OperationName).
			Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshaling graphql request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		g.url,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if session != nil {
		session.apply(httpReq.Header)
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("executing graphql request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf(
			"sorare API error (status %d): %s",
			resp.StatusCode,
			string(respBody),
		)
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		return fmt.Errorf("parsing graphql response: %w", err)
	}

	if len(gqlResp.Errors) > 0 {
		msgs := make([]string, 0, len(gqlResp.Errors))
		for _, e := range gqlResp.Errors {
			msgs = append(msgs, e.Message)
		}
		return &GraphQLError{Messages: msgs}
	}

	if out == nil || len(gqlResp.Data) == 0 {
		return nil
	}

	if err := json.Unmarshal(gqlResp.Data, out); err != nil {
		return fmt.Errorf("decoding graphql data: %w", err)
	}

	return nil
}
