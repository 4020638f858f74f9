package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Request is a single GraphQL operation.
type Request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type Response struct {
	Data   json.RawMessage `json:"data"`
	Errors []Error         `json:"errors,omitempty"`
}

type Error struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// RemoteError is returned when the API answered with a structured errors array.
type RemoteError struct {
	Errors []Error
}

func (e *RemoteError) Error() string {
	messages := make([]string, 0, len(e.Errors))
	for _, gqlErr := range e.Errors {
		messages = append(messages, gqlErr.Message)
	}

	return "graphql errors: " + strings.Join(messages, "; ")
}

// FirstMessage returns the first non-empty error message.
func (e *RemoteError) FirstMessage() string {
	for _, gqlErr := range e.Errors {
		if gqlErr.Message != "" {
			return gqlErr.Message
		}
	}

	return ""
}

// NetworkError covers transport failures and non-GraphQL HTTP responses.
type NetworkError struct {
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("graphql transport error: status %d: %v", e.StatusCode, e.Err)
	}

	return fmt.Sprintf("graphql transport error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

type tokenKey struct{}

// ContextWithToken attaches the shopper's bearer token to outgoing requests made with ctx.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

type Client struct {
	endpoint   string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(endpoint string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Execute runs the operation and decodes data into out. out may be nil.
func (c *Client) Execute(ctx context.Context, request Request, out any) error {

	payload, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	var gqlResp Response
	if err := json.Unmarshal(body, &gqlResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return &NetworkError{StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected response: %s", truncate(body))}
		}

		return &NetworkError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to unmarshal response: %w", err)}
	}

	// Servers may answer validation failures with a 4xx and a well-formed errors array.
	if len(gqlResp.Errors) > 0 {
		return &RemoteError{Errors: gqlResp.Errors}
	}

	if resp.StatusCode != http.StatusOK {
		return &NetworkError{StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected response: %s", truncate(body))}
	}

	if out == nil || len(gqlResp.Data) == 0 {
		return nil
	}

	if err := json.Unmarshal(gqlResp.Data, out); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}

	return nil
}

func truncate(body []byte) string {
	const limit = 256
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}

	return string(body)
}
