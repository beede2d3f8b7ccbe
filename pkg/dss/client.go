// Package dss implements an HTTP API client for a DSS instance.
//
// The client performs direct, synchronous request/response exchanges: no
// retries, no background tasks. Transport failures and API errors propagate
// unchanged to the caller.
package dss

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// Client is an API client for a DSS instance. It is safe for sequential
// use only: callers sharing a Client across goroutines must serialize
// access to any mutable state they derive from it (such as a fetched
// settings document).
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     hclog.Logger
}

// New creates a new DSS API client from the given config.
func New(cfg *Config) (*Client, error) {
	if cfg.TLSVerify == nil {
		defaults := DefaultConfig()
		cfg.TLSVerify = defaults.TLSVerify
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: cfg.NewHTTPClient(),
		logger:     cfg.Logger.Named("dss-client"),
	}, nil
}

// PerformJSON executes a request and decodes the JSON response into result.
// A nil result discards the body. params go into the query string; a non-nil
// body is marshaled as JSON.
func (c *Client) PerformJSON(ctx context.Context, method, path string, params map[string]string, body interface{}, result interface{}) error {
	respBody, err := c.perform(ctx, method, path, params, body)
	if err != nil {
		return err
	}

	if result == nil {
		return nil
	}
	if len(respBody) == 0 {
		return fmt.Errorf("%s %s: %w", method, path, ErrNoData)
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// PerformRawJSON executes a request and returns the response as a generic
// mapping. Endpoints whose payloads are passed through untouched (entity
// definitions, the settings document) go through here.
func (c *Client) PerformRawJSON(ctx context.Context, method, path string, params map[string]string, body interface{}) (map[string]any, error) {
	var result map[string]any
	if err := c.PerformJSON(ctx, method, path, params, body, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// PerformEmpty executes a request and discards any response body.
func (c *Client) PerformEmpty(ctx context.Context, method, path string, params map[string]string, body interface{}) error {
	_, err := c.perform(ctx, method, path, params, body)
	return err
}

// perform executes a single HTTP exchange and returns the raw response body.
// Non-2xx responses become an *APIError; network failures are wrapped and
// propagate unchanged.
func (c *Client) perform(ctx context.Context, method, path string, params map[string]string, body interface{}) ([]byte, error) {
	endpoint := c.buildURL(path, params)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("sending request",
		"method", method,
		"path", path,
		"request_id", requestID,
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("received response",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// buildURL constructs a URL with query parameters
func (c *Client) buildURL(path string, params map[string]string) string {
	u, _ := url.Parse(c.baseURL + path)

	if len(params) > 0 {
		q := u.Query()
		for k, v := range params {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	return u.String()
}
