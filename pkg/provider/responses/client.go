package responses

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
	"github.com/SweetRetry/seedkit-ai/pkg/debug"
	"github.com/SweetRetry/seedkit-ai/pkg/provider"
)

// Path is the responses endpoint relative to the base URL.
const Path = "/responses"

// Client calls the Ark responses endpoint.
type Client struct {
	http *provider.Client
}

// Ensure Client implements provider.Provider at compile time.
var _ provider.Provider = (*Client)(nil)

// New creates a responses client on top of the shared HTTP client.
func New(c *provider.Client) *Client {
	return &Client{http: c}
}

// Name returns the provider name.
func (c *Client) Name() string { return "ark.responses" }

// Generate performs a non-streaming call.
func (c *Client) Generate(ctx context.Context, opts *provider.CallOptions) (*api.GenerateResult, error) {
	started := time.Now()

	req, warnings, err := BuildRequest(opts, false)
	if err != nil {
		return nil, c.fail(opts, started, err)
	}
	resp, err := c.post(ctx, req, opts, false)
	if err != nil {
		return nil, c.fail(opts, started, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(opts, started, provider.MapNetworkError(err))
	}
	debug.Body("providers", "response body", body)

	result, err := ParseResponse(body)
	if err != nil {
		return nil, c.fail(opts, started, err)
	}
	result.Warnings = warnings

	provider.RecordCall(provider.ProtocolResponses, opts.Model, started, &result.Usage, nil)
	return result, nil
}

// Stream performs a streaming call. The returned channel starts with
// StreamStart, ends with Finish or Error and is then closed.
func (c *Client) Stream(ctx context.Context, opts *provider.CallOptions) (<-chan api.StreamEvent, error) {
	started := time.Now()

	req, warnings, err := BuildRequest(opts, true)
	if err != nil {
		return nil, c.fail(opts, started, err)
	}
	resp, err := c.post(ctx, req, opts, true)
	if err != nil {
		return nil, c.fail(opts, started, err)
	}

	ch := make(chan api.StreamEvent, provider.StreamBuffer)
	go provider.Pump(ctx, resp, NewTransformer(), provider.PumpOptions{
		Model:    opts.Model,
		Warnings: warnings,
		Started:  started,
	}, ch)
	return ch, nil
}

func (c *Client) post(ctx context.Context, req *Request, opts *provider.CallOptions, stream bool) (*http.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, api.NewServerError(fmt.Sprintf("failed to marshal request: %s", err.Error()))
	}
	return c.http.Post(ctx, Path, body, opts.Headers, stream)
}

// fail records a failed call and adds the protocol prefix.
func (c *Client) fail(opts *provider.CallOptions, started time.Time, err error) error {
	provider.RecordCall(provider.ProtocolResponses, opts.Model, started, nil, err)
	return fmt.Errorf("responses: %w", err)
}

// Close releases idle connections of the shared HTTP client.
func (c *Client) Close() error {
	return c.http.Close()
}
