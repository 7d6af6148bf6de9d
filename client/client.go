package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paysponge/spongewallet-go/config"
	"github.com/paysponge/spongewallet-go/internal/logger"
)

// Version is sent in the Sponge-Version header on every request.
const Version = "0.1.0"

// VersionHeader carries the SDK release to the API.
const VersionHeader = "Sponge-Version"

// Params are query string values. Keys that are absent are not sent.
type Params map[string]string

// Set adds key only when value is non-empty.
func (p Params) Set(key, value string) {
	if value != "" {
		p[key] = value
	}
}

// APIClient handles all HTTP communication with the Sponge API
type APIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewAPIClient creates a new API client with the given configuration
func NewAPIClient(cfg *config.Config) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(cfg.ResolvedBaseURL(), "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
	}
}

// WithAPIKey returns a copy of the client that authenticates with apiKey.
func (c *APIClient) WithAPIKey(apiKey string) *APIClient {
	clone := *c
	clone.apiKey = apiKey
	return &clone
}

// WithHTTPClient returns a copy of the client that sends requests through hc.
func (c *APIClient) WithHTTPClient(hc *http.Client) *APIClient {
	clone := *c
	clone.httpClient = hc
	return &clone
}

// BaseURL returns the API root without a trailing slash.
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// APIKey returns the bearer token used by this client.
func (c *APIClient) APIKey() string {
	return c.apiKey
}

// BuildURL constructs a full URL for the given endpoint
func (c *APIClient) BuildURL(endpoint string) string {
	return c.baseURL + endpoint
}

// Get makes a GET request to the specified endpoint
func (c *APIClient) Get(ctx context.Context, endpoint string, params Params, result interface{}) error {
	_, err := c.Do(ctx, http.MethodGet, endpoint, params, nil, result)
	return err
}

// Post makes a POST request to the specified endpoint
func (c *APIClient) Post(ctx context.Context, endpoint string, body interface{}, result interface{}) error {
	_, err := c.Do(ctx, http.MethodPost, endpoint, nil, body, result)
	return err
}

// Put makes a PUT request to the specified endpoint
func (c *APIClient) Put(ctx context.Context, endpoint string, body interface{}, result interface{}) error {
	_, err := c.Do(ctx, http.MethodPut, endpoint, nil, body, result)
	return err
}

// Delete makes a DELETE request to the specified endpoint
func (c *APIClient) Delete(ctx context.Context, endpoint string, result interface{}) error {
	_, err := c.Do(ctx, http.MethodDelete, endpoint, nil, nil, result)
	return err
}

// Do is the core HTTP request method. It decodes a 2xx body into result and
// reports false when the server answered 204 No Content, leaving result untouched.
func (c *APIClient) Do(ctx context.Context, method, endpoint string, params Params, body interface{}, result interface{}) (bool, error) {
	fullURL := BuildURLWithParams(c.BuildURL(endpoint), params)
	start := time.Now()
	logger.Debug("Starting %s request to %s", method, fullURL)

	var requestBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return false, fmt.Errorf("error marshaling request body: %w", err)
		}
		requestBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, requestBody)
	if err != nil {
		return false, fmt.Errorf("error creating request: %w", err)
	}

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(VersionHeader, Version)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug("Request to %s failed after %v: %v", fullURL, time.Since(start), err)
		return false, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	logger.Debug("Request to %s completed in %v with status %d", fullURL, time.Since(start), resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return false, newAPIError(resp, bodyBytes)
	}

	if resp.StatusCode == http.StatusNoContent {
		return false, nil
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return false, fmt.Errorf("error decoding response from %s: %w", endpoint, err)
		}
	}

	return true, nil
}

// Fetch performs a request and decodes the body into a new T. It returns a nil
// pointer when the server answered 204 No Content.
func Fetch[T any](ctx context.Context, c *APIClient, method, endpoint string, params Params, body interface{}) (*T, error) {
	var result T
	ok, err := c.Do(ctx, method, endpoint, params, body, &result)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &result, nil
}

// BuildURLWithParams properly builds a URL with query parameters
func BuildURLWithParams(endpoint string, params Params) string {
	if len(params) == 0 {
		return endpoint
	}

	parts := strings.SplitN(endpoint, "?", 2)
	baseURL := parts[0]

	values := url.Values{}
	if len(parts) > 1 {
		existingParams, _ := url.ParseQuery(parts[1])
		values = existingParams
	}

	for key, value := range params {
		values.Set(key, value)
	}

	if len(values) > 0 {
		return baseURL + "?" + values.Encode()
	}
	return baseURL
}

// PathEscape escapes a single path segment such as an id or transaction hash.
func PathEscape(segment string) string {
	return url.PathEscape(segment)
}
