package provider

import (
	"context"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
)

// Protocol names one of the two Ark wire protocols.
type Protocol string

const (
	// ProtocolChat is the chat-completions style protocol (POST /chat/completions).
	ProtocolChat Protocol = "chat"
	// ProtocolResponses is the responses style protocol (POST /responses).
	ProtocolResponses Protocol = "responses"
)

// ParseProtocol converts a protocol name to a Protocol.
func ParseProtocol(s string) (Protocol, bool) {
	switch Protocol(s) {
	case ProtocolChat, ProtocolResponses:
		return Protocol(s), true
	}
	return "", false
}

// Provider abstracts an LLM inference backend. Each implementation handles
// its own wire protocol internally and speaks the normalized api types.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type Provider interface {
	// Name returns the provider identifier (e.g., "ark.chat").
	Name() string

	// Generate performs non-streaming inference.
	Generate(ctx context.Context, opts *CallOptions) (*api.GenerateResult, error)

	// Stream performs streaming inference. The returned channel receives
	// normalized events, ends with exactly one api.Finish or api.Error, and
	// is closed by the provider afterwards.
	Stream(ctx context.Context, opts *CallOptions) (<-chan api.StreamEvent, error)

	// Close releases provider resources (HTTP clients, connections).
	Close() error
}

// StreamTransformer turns the SSE payloads of one vendor stream into
// normalized events. A transformer is owned by a single stream and is not
// safe for concurrent use.
//
// After a terminal event (Finish or Error) has been produced every method
// returns nil.
type StreamTransformer interface {
	// Protocol reports the wire protocol the transformer decodes.
	Protocol() Protocol

	// Accept consumes one SSE data payload.
	Accept(data []byte) []api.StreamEvent

	// Flush closes open spans and emits the final Finish.
	Flush() []api.StreamEvent

	// Abort closes open spans and emits an Error carrying err.
	Abort(err error) []api.StreamEvent

	// Done reports whether a terminal event has been produced.
	Done() bool
}
