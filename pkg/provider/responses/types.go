package responses

import (
	"encoding/json"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
	"github.com/SweetRetry/seedkit-ai/pkg/provider"
)

// --- Request types ---

// Request is the wire format for POST /responses.
type Request struct {
	Model        string      `json:"model"`
	Input        []InputItem `json:"input"`
	Instructions string      `json:"instructions,omitempty"`

	MaxOutputTokens *int     `json:"max_output_tokens,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
	TopP            *float64 `json:"top_p,omitempty"`

	// Tools holds FunctionTool values and native tool objects.
	Tools             []any `json:"tools,omitempty"`
	ToolChoice        any   `json:"tool_choice,omitempty"`
	ParallelToolCalls *bool `json:"parallel_tool_calls,omitempty"`

	Text               *TextConfig `json:"text,omitempty"`
	Store              *bool       `json:"store,omitempty"`
	PreviousResponseID string      `json:"previous_response_id,omitempty"`
	Thinking           *Thinking   `json:"thinking,omitempty"`
	Reasoning          *Reasoning  `json:"reasoning,omitempty"`

	Stream bool `json:"stream,omitempty"`
}

// TextConfig carries the output format constraint.
type TextConfig struct {
	Format TextFormat `json:"format"`
}

// TextFormat is the text.format object.
type TextFormat struct {
	Type        string          `json:"type"`
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description,omitempty"`
	Schema      json.RawMessage `json:"schema,omitempty"`
	Strict      *bool           `json:"strict,omitempty"`
}

// Thinking toggles deep thinking.
type Thinking struct {
	Type string `json:"type"`
}

// Reasoning sets the reasoning effort.
type Reasoning struct {
	Effort string `json:"effort"`
}

// FunctionTool is a function definition in the flat responses shape.
type FunctionTool struct {
	Type        string          `json:"type"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters"`
}

// NamedToolChoice forces a specific function.
type NamedToolChoice struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// InputItem is one entry of the input array: MessageItem, ReasoningItem,
// FunctionCallItem or FunctionCallOutputItem.
type InputItem interface {
	isInputItem()
}

// MessageItem is a user or assistant message.
type MessageItem struct {
	Type    string         `json:"type"`
	Role    string         `json:"role"`
	Content []InputContent `json:"content"`
}

// ReasoningItem replays reasoning from an earlier turn.
type ReasoningItem struct {
	Type    string        `json:"type"`
	Summary []SummaryText `json:"summary"`
}

// FunctionCallItem replays a tool call from an earlier turn.
type FunctionCallItem struct {
	Type      string `json:"type"`
	CallID    string `json:"call_id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// FunctionCallOutputItem carries a tool result.
type FunctionCallOutputItem struct {
	Type   string `json:"type"`
	CallID string `json:"call_id"`
	Output string `json:"output"`
}

func (MessageItem) isInputItem()            {}
func (ReasoningItem) isInputItem()          {}
func (FunctionCallItem) isInputItem()       {}
func (FunctionCallOutputItem) isInputItem() {}

// InputContent is a content part of a MessageItem.
type InputContent struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	FileURL  string `json:"file_url,omitempty"`
	FileData string `json:"file_data,omitempty"`
	Filename string `json:"filename,omitempty"`
}

// SummaryText is one reasoning summary entry.
type SummaryText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// --- Response types ---

// Response is the wire format returned by POST /responses and embedded in
// lifecycle stream events.
type Response struct {
	ID                string             `json:"id"`
	Object            string             `json:"object"`
	CreatedAt         int64              `json:"created_at"`
	Status            string             `json:"status"`
	Model             string             `json:"model"`
	Output            []OutputItem       `json:"output"`
	Usage             json.RawMessage    `json:"usage,omitempty"`
	IncompleteDetails *IncompleteDetails `json:"incomplete_details,omitempty"`
	Error             *ResponseError     `json:"error,omitempty"`
}

// IncompleteDetails explains why a response stopped early.
type IncompleteDetails struct {
	Reason string `json:"reason"`
}

// ResponseError is the error object of a failed response.
type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OutputItem is an output entry: message, reasoning, function_call or a
// native tool call such as web_search_call.
type OutputItem struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Status    string          `json:"status,omitempty"`
	Role      string          `json:"role,omitempty"`
	Content   []OutputContent `json:"content,omitempty"`
	Summary   []SummaryText   `json:"summary,omitempty"`
	CallID    string          `json:"call_id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Arguments string          `json:"arguments,omitempty"`
}

// OutputContent is a content part of a message output item.
type OutputContent struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Refusal string `json:"refusal,omitempty"`
}

// Usage is the responses usage record.
type Usage struct {
	InputTokens        *int `json:"input_tokens"`
	OutputTokens       *int `json:"output_tokens"`
	TotalTokens        *int `json:"total_tokens"`
	InputTokensDetails *struct {
		CachedTokens *int `json:"cached_tokens"`
	} `json:"input_tokens_details"`
	OutputTokensDetails *struct {
		ReasoningTokens *int `json:"reasoning_tokens"`
	} `json:"output_tokens_details"`
}

// Counts reduces the record to the counters used for normalization.
func (u *Usage) Counts() *provider.UsageCounts {
	c := &provider.UsageCounts{
		Input:  u.InputTokens,
		Output: u.OutputTokens,
	}
	if u.InputTokensDetails != nil {
		c.CacheRead = u.InputTokensDetails.CachedTokens
	}
	if u.OutputTokensDetails != nil {
		c.OutputReasoning = u.OutputTokensDetails.ReasoningTokens
	}
	return c
}

// parseUsage decodes a raw usage object. ok is false when usage was
// absent or null.
func parseUsage(raw json.RawMessage) (usage api.Usage, ok bool, err error) {
	if len(raw) == 0 || string(raw) == "null" {
		return api.Usage{}, false, nil
	}
	var u Usage
	if err := json.Unmarshal(raw, &u); err != nil {
		return api.Usage{}, false, err
	}
	return provider.NormalizeUsage(u.Counts(), raw), true, nil
}

// --- SSE event types ---

// Stream event type strings.
const (
	eventResponseCreated    = "response.created"
	eventResponseInProgress = "response.in_progress"
	eventResponseCompleted  = "response.completed"
	eventResponseIncomplete = "response.incomplete"
	eventResponseFailed     = "response.failed"
	eventError              = "error"

	eventOutputItemAdded = "response.output_item.added"
	eventOutputItemDone  = "response.output_item.done"

	eventContentPartAdded = "response.content_part.added"
	eventContentPartDone  = "response.content_part.done"
	eventTextDelta        = "response.output_text.delta"
	eventTextDone         = "response.output_text.done"

	eventReasoningPartAdded = "response.reasoning_summary_part.added"
	eventReasoningPartDone  = "response.reasoning_summary_part.done"
	eventReasoningDelta     = "response.reasoning_summary_text.delta"
	eventReasoningDone      = "response.reasoning_summary_text.done"

	eventFuncCallArgsDelta = "response.function_call_arguments.delta"
	eventFuncCallArgsDone  = "response.function_call_arguments.done"
)

// Output item types.
const (
	itemMessage      = "message"
	itemReasoning    = "reasoning"
	itemFunctionCall = "function_call"
)

// itemEventData is the payload of output_item.added and output_item.done.
type itemEventData struct {
	OutputIndex int        `json:"output_index"`
	Item        OutputItem `json:"item"`
}

// deltaEventData is the payload of text, reasoning and argument deltas.
type deltaEventData struct {
	ItemID string `json:"item_id"`
	Delta  string `json:"delta"`
}

// argsDoneEventData is the payload of function_call_arguments.done.
type argsDoneEventData struct {
	ItemID    string `json:"item_id"`
	Arguments string `json:"arguments"`
}

// responseEventData wraps the response in lifecycle events.
type responseEventData struct {
	Response Response `json:"response"`
}

// errorEventData is the payload of a stream-level error event.
type errorEventData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
