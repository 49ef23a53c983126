package api

import "encoding/json"

// ContentBlock is one piece of non-streaming output: TextBlock,
// ReasoningBlock or ToolCallBlock.
type ContentBlock interface {
	isContentBlock()
}

type TextBlock struct {
	Text string
}

type ReasoningBlock struct {
	Text string
}

type ToolCallBlock struct {
	ToolCallID string
	ToolName   string
	Input      string
}

func (TextBlock) isContentBlock()      {}
func (ReasoningBlock) isContentBlock() {}
func (ToolCallBlock) isContentBlock()  {}

// GenerateResult is the normalized result of a non-streaming call.
type GenerateResult struct {
	Content      []ContentBlock
	FinishReason FinishReason
	Usage        Usage
	Warnings     []CallWarning
	Response     ResponseMetadata
	RawBody      json.RawMessage
}

// Text returns the concatenated text blocks of the result.
func (r *GenerateResult) Text() string {
	var s string
	for _, c := range r.Content {
		if t, ok := c.(TextBlock); ok {
			s += t.Text
		}
	}
	return s
}

// ToolCalls returns the tool call blocks of the result in order.
func (r *GenerateResult) ToolCalls() []ToolCallBlock {
	var calls []ToolCallBlock
	for _, c := range r.Content {
		if tc, ok := c.(ToolCallBlock); ok {
			calls = append(calls, tc)
		}
	}
	return calls
}

// Usage is normalized token accounting. A nil field means the vendor did
// not report the value.
//
// InputNoCache is InputTotal minus InputCacheRead when both are known and
// InputTotal otherwise. OutputText is OutputTotal minus OutputReasoning when
// both are known and OutputTotal otherwise. InputCacheWrite is never
// reported by Ark.
type Usage struct {
	InputTotal      *int
	InputNoCache    *int
	InputCacheRead  *int
	InputCacheWrite *int
	OutputTotal     *int
	OutputText      *int
	OutputReasoning *int

	// Raw is the vendor usage object as received.
	Raw json.RawMessage
}

// FinishReasonKind is the normalized reason a generation stopped.
type FinishReasonKind string

const (
	FinishReasonStop          FinishReasonKind = "stop"
	FinishReasonLength        FinishReasonKind = "length"
	FinishReasonContentFilter FinishReasonKind = "content-filter"
	FinishReasonToolCalls     FinishReasonKind = "tool-calls"
	FinishReasonOther         FinishReasonKind = "other"
)

// FinishReason pairs the normalized reason with the vendor string it came from.
type FinishReason struct {
	Unified FinishReasonKind
	Raw     string
}

// WarningType classifies a CallWarning.
type WarningType string

const (
	WarningUnsupportedSetting WarningType = "unsupported-setting"
	WarningUnsupportedTool    WarningType = "unsupported-tool"
	WarningUnsupportedFeature WarningType = "unsupported-feature"
	WarningOther              WarningType = "other"
)

// CallWarning reports an input the adapter ignored instead of failing the call.
type CallWarning struct {
	Type WarningType
	// Setting names the ignored call option for unsupported-setting warnings.
	Setting string
	// Tool names the ignored tool for unsupported-tool warnings.
	Tool    string
	Details string
	Message string
}
