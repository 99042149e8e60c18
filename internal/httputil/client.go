// Package httputil provides the JSON client shared by the external
// collaborator adapters: text generation, blob storage, and transcription.
package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a small authenticated HTTP client for one collaborator endpoint.
// Requests carry the API key as a bearer token; transient failures (transport
// errors and 5xx responses) are retried.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxRetries int
}

// ClientConfig configures a collaborator client.
type ClientConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
}

// NewClient creates a collaborator client with sane defaults: a 30 second
// timeout and 2 retries.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = 2
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		maxRetries: maxRetries,
	}
}

// PostJSON posts a JSON body and decodes the JSON response into target.
// A nil target discards the response body.
func (c *Client) PostJSON(ctx context.Context, path string, body, target any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, "application/json", jsonBody, target)
}

// PutBytes uploads a raw payload and decodes the JSON response into target.
// A nil target discards the response body.
func (c *Client) PutBytes(ctx context.Context, path, contentType string, data []byte, target any) error {
	return c.do(ctx, http.MethodPut, path, contentType, data, target)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, payload []byte, target any) error {
	resp, err := c.doWithRetry(ctx, method, path, contentType, payload, 0)
	if err != nil {
		return err
	}
	return decodeResponse(resp, target)
}

func (c *Client) doWithRetry(ctx context.Context, method, path, contentType string, payload []byte, attempt int) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if attempt < c.maxRetries && ctx.Err() == nil {
			return c.doWithRetry(ctx, method, path, contentType, payload, attempt+1)
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode >= 500 && attempt < c.maxRetries {
		resp.Body.Close()
		return c.doWithRetry(ctx, method, path, contentType, payload, attempt+1)
	}
	return resp, nil
}

func decodeResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if target == nil {
		_, err := io.Copy(io.Discard, io.LimitReader(resp.Body, 8<<20))
		return err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
