package miro

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/boardtools/miro-mcp/internal/logging"
)

// DefaultBaseURL is the public Miro REST API v2 endpoint.
const DefaultBaseURL = "https://api.miro.com/v2"

// Config holds the dependencies for a Client. The access token is
// resolved once at process start and injected here; request logic never
// reads ambient global state.
type Config struct {
	// AccessToken is the bearer token attached to every request.
	AccessToken string

	// BaseURL overrides the API endpoint. Defaults to DefaultBaseURL.
	BaseURL string

	// HTTPClient overrides the underlying HTTP client. Defaults to a
	// client with a 30 second timeout.
	HTTPClient *http.Client
}

// Client provides access to the Miro REST API. All methods issue exactly
// one network call; there is no retry or caching layer.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new Miro API client from the given configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("access token cannot be empty")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL:    baseURL,
		token:      cfg.AccessToken,
		httpClient: httpClient,
	}, nil
}

// BaseURL returns the configured API endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIError is returned for any response outside the 2xx range. It carries
// the raw response body so callers can distinguish remote validation
// failures (4xx) from service failures (5xx).
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Status is the HTTP status text (e.g. "400 Bad Request").
	Status string

	// Body is the raw response body text.
	Body string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("miro API error: %s: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("miro API error: %s", e.Status)
}

// IsClientError reports whether the error is a 4xx response.
func (e *APIError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsServerError reports whether the error is a 5xx response.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// do issues one authenticated request and decodes the JSON response into
// out. A nil out skips decoding. Responses with status 204 and all DELETE
// requests are treated as empty successes without attempting to parse a
// body the remote service may not have sent.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	slog.Debug("api request",
		logging.Operation(method+" "+path),
		slog.Int("status_code", resp.StatusCode),
		slog.Duration(logging.KeyDuration, time.Since(start)),
	)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	// The remote service returns empty bodies for deletions
	// inconsistently; normalize to an empty success.
	if resp.StatusCode == http.StatusNoContent || method == http.MethodDelete {
		return nil
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// get issues a GET request.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// post issues a POST request with a JSON body.
func (c *Client) post(ctx context.Context, path string, query url.Values, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, query, body, out)
}

// patch issues a PATCH request with a JSON body.
func (c *Client) patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

// put issues a PUT request with a JSON body.
func (c *Client) put(ctx context.Context, path string, query url.Values, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, query, body, out)
}

// delete issues a DELETE request. The result is always an empty success
// unless the response status is outside the 2xx range.
func (c *Client) delete(ctx context.Context, path string, query url.Values) error {
	return c.do(ctx, http.MethodDelete, path, query, nil, nil)
}

// listQuery builds the shared query values for paginated list endpoints.
// The remote service enforces a minimum limit of 10 when one is supplied;
// the client passes the value through untouched.
func listQuery(cursor string, limit int) url.Values {
	q := url.Values{}
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", limit))
	}
	return q
}
