package provider

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
	"github.com/SweetRetry/seedkit-ai/pkg/debug"
	"github.com/SweetRetry/seedkit-ai/pkg/observability"
)

// DefaultBaseURL is the public Ark endpoint.
const DefaultBaseURL = "https://ark.cn-beijing.volces.com/api/v3"

// DefaultTimeout applies to non-streaming requests when none is configured.
const DefaultTimeout = 120 * time.Second

// ClientConfig configures the HTTP client shared by both protocols.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// Transport overrides the underlying round tripper. It is always
	// wrapped with metrics instrumentation.
	Transport http.RoundTripper
	// Headers are sent with every request.
	Headers http.Header
}

// Client performs JSON POST requests against Ark.
type Client struct {
	httpClient   *http.Client
	streamClient *http.Client
	baseURL      string
	apiKey       string
	headers      http.Header
}

// NewClient creates a new Client. An empty BaseURL selects DefaultBaseURL.
func NewClient(cfg ClientConfig) *Client {
	// Normalize: remove trailing slash from base URL.
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	transport := observability.InstrumentTransport(cfg.Transport)
	return &Client{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		// Streams can legitimately outlive any fixed timeout. The
		// context controls their lifetime instead.
		streamClient: &http.Client{
			Transport: transport,
		},
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		headers: cfg.Headers,
	}
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Post sends body to path. On success the caller owns the response body.
// Non-2xx responses are returned as failed_request errors with the body
// already consumed and closed.
func (c *Client) Post(ctx context.Context, path string, body []byte, headers http.Header, stream bool) (*http.Response, error) {
	url := c.baseURL + path
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, api.NewServerError(fmt.Sprintf("failed to create HTTP request: %s", err.Error()))
	}

	for k, vs := range c.headers {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	for k, vs := range headers {
		httpReq.Header.Del(k)
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if stream {
		httpReq.Header.Set("Accept", "text/event-stream")
	}
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	debug.Log("providers", "request", "method", http.MethodPost, "url", url, "stream", stream)
	debug.Body("providers", "request body", body)

	client := c.httpClient
	if stream {
		client = c.streamClient
	}

	httpResp, err := client.Do(httpReq)
	if err != nil {
		return nil, MapNetworkError(err)
	}

	debug.Log("providers", "response", "url", url, "status", httpResp.StatusCode)

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		defer httpResp.Body.Close()
		return nil, MapHTTPError(httpResp)
	}
	return httpResp, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
