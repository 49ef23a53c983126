package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
	"github.com/SweetRetry/seedkit-ai/pkg/debug"
	"github.com/SweetRetry/seedkit-ai/pkg/provider"
)

// Path is the chat-completions endpoint relative to the base URL.
const Path = "/chat/completions"

// Client calls the Ark chat-completions endpoint.
type Client struct {
	http *provider.Client
}

var _ provider.Provider = (*Client)(nil)

// New creates a chat-completions client on top of the shared HTTP client.
func New(c *provider.Client) *Client {
	return &Client{http: c}
}

// Name returns the provider name.
func (c *Client) Name() string { return "ark.chat" }

// Generate performs a non-streaming call.
func (c *Client) Generate(ctx context.Context, opts *provider.CallOptions) (*api.GenerateResult, error) {
	started := time.Now()
	result, err := c.generate(ctx, opts)
	if err != nil {
		provider.RecordCall(provider.ProtocolChat, opts.Model, started, nil, err)
		return nil, fmt.Errorf("chat: %w", err)
	}
	provider.RecordCall(provider.ProtocolChat, opts.Model, started, &result.Usage, nil)
	return result, nil
}

func (c *Client) generate(ctx context.Context, opts *provider.CallOptions) (*api.GenerateResult, error) {
	req, warnings, err := BuildRequest(opts, false)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, api.NewServerError(fmt.Sprintf("failed to marshal request: %s", err.Error()))
	}

	resp, err := c.http.Post(ctx, Path, body, opts.Headers, false)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, provider.MapNetworkError(err)
	}
	debug.Body("providers", "response body", respBody)

	result, err := ParseResponse(respBody)
	if err != nil {
		return nil, err
	}
	result.Warnings = warnings
	return result, nil
}

// Stream performs a streaming call. The returned channel starts with
// StreamStart, ends with Finish or Error and is then closed.
func (c *Client) Stream(ctx context.Context, opts *provider.CallOptions) (<-chan api.StreamEvent, error) {
	started := time.Now()

	req, warnings, err := BuildRequest(opts, true)
	if err != nil {
		provider.RecordCall(provider.ProtocolChat, opts.Model, started, nil, err)
		return nil, fmt.Errorf("chat: %w", err)
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("chat: %w", api.NewServerError(fmt.Sprintf("failed to marshal request: %s", err.Error())))
	}

	resp, err := c.http.Post(ctx, Path, body, opts.Headers, true)
	if err != nil {
		provider.RecordCall(provider.ProtocolChat, opts.Model, started, nil, err)
		return nil, fmt.Errorf("chat: %w", err)
	}

	ch := make(chan api.StreamEvent, provider.StreamBuffer)
	go provider.Pump(ctx, resp, NewTransformer(), provider.PumpOptions{
		Model:    opts.Model,
		Warnings: warnings,
		Started:  started,
	}, ch)
	return ch, nil
}

// Close releases idle connections of the shared HTTP client.
func (c *Client) Close() error {
	return c.http.Close()
}
