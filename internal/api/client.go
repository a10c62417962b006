// Package api provides an HTTP client for the JSON API served by
// "flipboard serve".
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dedene/flipboard-cli/internal/share"
)

// DefaultBaseURL is where "flipboard serve" listens by default.
const DefaultBaseURL = share.DefaultOrigin

// ClientOptions configures a new Client.
type ClientOptions struct {
	BaseURL   string
	Verbose   bool
	UserAgent string
}

// Client wraps an HTTP client for flipboard server calls.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
}

// NewClient builds a Client with retry transport and optional verbose logging.
func NewClient(opts ClientOptions) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = "flipboard-cli/dev"
	}

	var transport http.RoundTripper = &retryTransport{
		base:       http.DefaultTransport,
		maxRetries: 3,
		baseDelay:  500 * time.Millisecond,
	}

	if opts.Verbose {
		transport = &loggingTransport{base: transport}
	}

	return &Client{
		http: &http.Client{
			Transport: transport,
			Timeout:   15 * time.Second,
		},
		baseURL:   baseURL,
		userAgent: ua,
	}
}

// BaseURL returns the server the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// do executes an HTTP request with standard headers.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	return resp, nil
}

// Get performs a GET request against the server.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request against the server with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body io.Reader) (*http.Response, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// call posts {"text": text} to path and decodes the answer into out.
func (c *Client) call(ctx context.Context, path, text string, out any) error {
	raw, err := json.Marshal(text)
	if err != nil {
		return fmt.Errorf("marshaling text: %w", err)
	}

	body, err := json.Marshal(TextRequest{Text: raw})
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	resp, err := c.Post(ctx, path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("posting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}

	return nil
}

func (c *Client) result(ctx context.Context, path, text string) (string, error) {
	var out ResultResponse
	if err := c.call(ctx, path, text, &out); err != nil {
		return "", err
	}

	return out.Result, nil
}

// Encode returns the server's transport token for text.
func (c *Client) Encode(ctx context.Context, text string) (string, error) {
	return c.result(ctx, PathEncode, text)
}

// Decode returns the server's decoding of token; "" for a malformed token.
func (c *Client) Decode(ctx context.Context, token string) (string, error) {
	return c.result(ctx, PathDecode, token)
}

// Sanitize returns the server's display-safe form of text.
func (c *Client) Sanitize(ctx context.Context, text string) (string, error) {
	return c.result(ctx, PathSanitize, text)
}

// Share asks the server for a share link under its own origin.
func (c *Client) Share(ctx context.Context, text string) (*ShareResponse, error) {
	var out ShareResponse
	if err := c.call(ctx, PathShare, text, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Health checks that the server is up.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.Get(ctx, PathHealth)
	if err != nil {
		return fmt.Errorf("checking health: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return err
	}

	var out HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decoding health response: %w", err)
	}

	if out.Status != "ok" {
		return &Error{StatusCode: resp.StatusCode, Message: "status " + out.Status}
	}

	return nil
}

type clientCtxKey struct{}

// WithClient stores a Client in the context.
func WithClient(ctx context.Context, cl *Client) context.Context {
	return context.WithValue(ctx, clientCtxKey{}, cl)
}

// ClientFromContext retrieves the Client from the context.
func ClientFromContext(ctx context.Context) *Client {
	if v := ctx.Value(clientCtxKey{}); v != nil {
		if cl, ok := v.(*Client); ok {
			return cl
		}
	}

	return nil
}
