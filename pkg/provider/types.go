package provider

import (
	"encoding/json"
	"net/http"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
)

// CallOptions is the protocol-agnostic description of one model call.
// Cancellation is carried by the context passed alongside it.
type CallOptions struct {
	Model    string
	Messages []api.Message

	Tools      []Tool
	ToolChoice *ToolChoice

	Temperature      *float64
	MaxOutputTokens  *int
	TopP             *float64
	TopK             *int
	PresencePenalty  *float64
	FrequencyPenalty *float64
	StopSequences    []string
	Seed             *int

	ResponseFormat  *ResponseFormat
	ProviderOptions *ProviderOptions

	// Headers are added to the outbound HTTP request.
	Headers http.Header
}

// ThinkingMode controls Ark deep thinking.
type ThinkingMode string

const (
	ThinkingEnabled  ThinkingMode = "enabled"
	ThinkingDisabled ThinkingMode = "disabled"
	ThinkingAuto     ThinkingMode = "auto"
)

// ProviderOptions holds Ark-specific knobs that have no generic counterpart.
type ProviderOptions struct {
	Thinking ThinkingMode
	// ReasoningEffort maps to reasoning.effort on the responses protocol
	// and reasoning_effort on the chat protocol.
	ReasoningEffort   string
	ParallelToolCalls *bool
	// MaxCompletionTokens replaces max_tokens on the chat protocol. It
	// includes reasoning tokens.
	MaxCompletionTokens *int
	Store               *bool
	PreviousResponseID  string
	User                string
}

// ResponseFormatType selects the output format.
type ResponseFormatType string

const (
	ResponseFormatText       ResponseFormatType = "text"
	ResponseFormatJSONObject ResponseFormatType = "json_object"
	ResponseFormatJSONSchema ResponseFormatType = "json_schema"
)

// ResponseFormat requests structured output.
type ResponseFormat struct {
	Type        ResponseFormatType
	Name        string
	Description string
	Schema      json.RawMessage
	Strict      *bool
}

// Thinking returns the configured thinking mode or "" when unset.
func (o *CallOptions) Thinking() ThinkingMode {
	if o.ProviderOptions == nil {
		return ""
	}
	return o.ProviderOptions.Thinking
}

// Options returns the provider options, never nil.
func (o *CallOptions) Options() ProviderOptions {
	if o.ProviderOptions == nil {
		return ProviderOptions{}
	}
	return *o.ProviderOptions
}
