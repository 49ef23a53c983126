package ark

import (
	"context"
	"fmt"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
	"github.com/SweetRetry/seedkit-ai/pkg/config"
	"github.com/SweetRetry/seedkit-ai/pkg/debug"
	"github.com/SweetRetry/seedkit-ai/pkg/provider"
	"github.com/SweetRetry/seedkit-ai/pkg/provider/chat"
	"github.com/SweetRetry/seedkit-ai/pkg/provider/responses"
)

// Provider implements provider.Provider for Volcengine Ark.
type Provider struct {
	cfg       Config
	http      *provider.Client
	chat      *chat.Client
	responses *responses.Client
}

// Ensure Provider implements provider.Provider at compile time.
var _ provider.Provider = (*Provider)(nil)

// New creates a new Provider with the given configuration.
// Returns an error if the configuration is invalid.
func New(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ark: APIKey is required")
	}
	if cfg.Protocol == "" {
		cfg.Protocol = provider.ProtocolChat
	}
	if _, ok := provider.ParseProtocol(string(cfg.Protocol)); !ok {
		return nil, fmt.Errorf("ark: unknown protocol %q", cfg.Protocol)
	}
	for model, p := range cfg.Models {
		if _, ok := provider.ParseProtocol(string(p)); !ok {
			return nil, fmt.Errorf("ark: unknown protocol %q for model %s", p, model)
		}
	}

	c := provider.NewClient(provider.ClientConfig{
		BaseURL:   cfg.BaseURL,
		APIKey:    cfg.APIKey,
		Timeout:   cfg.Timeout,
		Transport: cfg.Transport,
		Headers:   cfg.Headers,
	})
	return &Provider{
		cfg:       cfg,
		http:      c,
		chat:      chat.New(c),
		responses: responses.New(c),
	}, nil
}

// FromConfig builds a Provider from loaded configuration.
func FromConfig(cfg *config.Config) (*Provider, error) {
	pc := cfg.Provider
	models := make(map[string]provider.Protocol, len(pc.Models))
	for id, m := range pc.Models {
		if m.Protocol != "" {
			models[id] = provider.Protocol(m.Protocol)
		}
	}
	return New(Config{
		BaseURL:      pc.BaseURL,
		APIKey:       pc.APIKey,
		Timeout:      pc.Timeout,
		DefaultModel: pc.DefaultModel,
		Protocol:     provider.Protocol(pc.Protocol),
		Models:       models,
	})
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return "ark"
}

// ProtocolFor returns the protocol used for model.
func (p *Provider) ProtocolFor(model string) provider.Protocol {
	if proto, ok := p.cfg.Models[model]; ok {
		return proto
	}
	return p.cfg.Protocol
}

// Generate performs non-streaming inference with the protocol configured
// for the requested model.
func (p *Provider) Generate(ctx context.Context, opts *provider.CallOptions) (*api.GenerateResult, error) {
	opts = p.withDefaults(opts)
	return p.route(opts).Generate(ctx, opts)
}

// Stream performs streaming inference with the protocol configured for the
// requested model.
func (p *Provider) Stream(ctx context.Context, opts *provider.CallOptions) (<-chan api.StreamEvent, error) {
	opts = p.withDefaults(opts)
	return p.route(opts).Stream(ctx, opts)
}

// Close releases idle connections.
func (p *Provider) Close() error {
	return p.http.Close()
}

func (p *Provider) route(opts *provider.CallOptions) provider.Provider {
	proto := p.ProtocolFor(opts.Model)
	debug.Log("providers", "routing call", "model", opts.Model, "protocol", proto)
	if proto == provider.ProtocolResponses {
		return p.responses
	}
	return p.chat
}

// withDefaults fills the default model without mutating the caller's options.
func (p *Provider) withDefaults(opts *provider.CallOptions) *provider.CallOptions {
	if opts.Model != "" || p.cfg.DefaultModel == "" {
		return opts
	}
	cp := *opts
	cp.Model = p.cfg.DefaultModel
	return &cp
}
