package ark

import (
	"net/http"
	"time"

	"github.com/SweetRetry/seedkit-ai/pkg/provider"
)

// Config holds configuration for the Ark provider.
type Config struct {
	// BaseURL is the Ark API root. Defaults to provider.DefaultBaseURL.
	BaseURL string

	// APIKey is sent as a bearer token.
	APIKey string

	// Timeout for non-streaming requests. Defaults to 120s.
	Timeout time.Duration

	// Headers are added to every request.
	Headers http.Header

	// Transport overrides the HTTP round tripper (tests, proxies).
	Transport http.RoundTripper

	// DefaultModel is used when a call leaves CallOptions.Model empty.
	DefaultModel string

	// Protocol is used for models without an entry in Models.
	// Defaults to provider.ProtocolChat.
	Protocol provider.Protocol

	// Models maps model ids to the protocol they are served with.
	Models map[string]provider.Protocol
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig(apiKey string) Config {
	return Config{
		BaseURL:  provider.DefaultBaseURL,
		APIKey:   apiKey,
		Timeout:  provider.DefaultTimeout,
		Protocol: provider.ProtocolChat,
	}
}
