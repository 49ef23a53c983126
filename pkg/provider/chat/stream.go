package chat

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
	"github.com/SweetRetry/seedkit-ai/pkg/debug"
	"github.com/SweetRetry/seedkit-ai/pkg/provider"
)

// Transformer turns chat-completions chunks into stream events. It is not
// safe for concurrent use; each stream owns a fresh instance.
type Transformer struct {
	metadataSent bool
	textID       string
	reasoningID  string
	nextText     int
	nextReason   int

	tools        *provider.ToolBuffers[int]
	finishReason api.FinishReason
	usage        api.Usage
	done         bool
}

// NewTransformer returns a transformer for one stream.
func NewTransformer() *Transformer {
	return &Transformer{
		tools:        provider.NewToolBuffers[int](),
		finishReason: provider.MapChatFinishReason(""),
	}
}

var _ provider.StreamTransformer = (*Transformer)(nil)

// Protocol implements provider.StreamTransformer.
func (t *Transformer) Protocol() provider.Protocol { return provider.ProtocolChat }

// Done implements provider.StreamTransformer.
func (t *Transformer) Done() bool { return t.done }

// Accept processes one SSE data payload.
func (t *Transformer) Accept(data []byte) []api.StreamEvent {
	if t.done {
		return nil
	}

	var chunk Chunk
	if err := json.Unmarshal(data, &chunk); err != nil {
		slog.Warn("malformed chat chunk", "error", err, "data", debug.Truncate(string(data), 200))
		return t.Abort(api.NewMalformedChunkError(err))
	}
	if apiErr := provider.BodyError(data); apiErr != nil {
		return t.Abort(apiErr)
	}

	var out []api.StreamEvent
	if !t.metadataSent && chunk.ID != "" {
		t.metadataSent = true
		md := api.ResponseMetadata{ID: chunk.ID, ModelID: chunk.Model}
		if chunk.Created > 0 {
			md.Timestamp = time.Unix(chunk.Created, 0).UTC()
		}
		out = append(out, md)
	}

	if len(chunk.Choices) > 0 {
		choice := chunk.Choices[0]
		delta := choice.Delta

		if delta.ReasoningContent != nil && *delta.ReasoningContent != "" {
			if t.reasoningID == "" {
				t.reasoningID = fmt.Sprintf("reasoning-%d", t.nextReason)
				t.nextReason++
				out = append(out, api.ReasoningStart{ID: t.reasoningID})
			}
			out = append(out, api.ReasoningDelta{ID: t.reasoningID, Delta: *delta.ReasoningContent})
		}

		if delta.Content != nil && *delta.Content != "" {
			if t.textID == "" {
				t.textID = fmt.Sprintf("txt-%d", t.nextText)
				t.nextText++
				out = append(out, api.TextStart{ID: t.textID})
			}
			out = append(out, api.TextDelta{ID: t.textID, Delta: *delta.Content})
		}

		for _, tc := range delta.ToolCalls {
			out = append(out, t.toolCallDelta(chunk.ID, tc)...)
		}

		if choice.FinishReason != nil && *choice.FinishReason != "" {
			t.finishReason = provider.MapChatFinishReason(*choice.FinishReason)
		}
	}

	usage, ok, err := parseUsage(chunk.Usage)
	if err != nil {
		return append(out, t.Abort(api.NewMalformedChunkError(err))...)
	}
	if ok {
		t.usage = usage
	}
	return out
}

func (t *Transformer) toolCallDelta(chunkID string, tc ChunkToolCall) []api.StreamEvent {
	var out []api.StreamEvent

	buf, ok := t.tools.Get(tc.Index)
	if !ok {
		id := tc.ID
		if id == "" {
			id = fallbackToolCallID(chunkID, tc.Index)
		}
		buf = t.tools.Add(tc.Index, id, tc.Function.Name)
		out = append(out, api.ToolInputStart{ID: buf.ID, ToolName: buf.Name})
	} else if buf.Name == "" && tc.Function.Name != "" {
		buf.Name = tc.Function.Name
	}

	if tc.Function.Arguments != "" {
		buf.Args.WriteString(tc.Function.Arguments)
		out = append(out, api.ToolInputDelta{ID: buf.ID, Delta: tc.Function.Arguments})
	}
	return out
}

// fallbackToolCallID derives a stable id for tool calls the vendor sent
// without one, so replaying a stream yields the same events.
func fallbackToolCallID(chunkID string, index int) string {
	if chunkID == "" {
		return fmt.Sprintf("call_%d", index)
	}
	return fmt.Sprintf("call_%s_%d", chunkID, index)
}

// closeSpans ends open reasoning and text spans, in that order.
func (t *Transformer) closeSpans() []api.StreamEvent {
	var out []api.StreamEvent
	if t.reasoningID != "" {
		out = append(out, api.ReasoningEnd{ID: t.reasoningID})
		t.reasoningID = ""
	}
	if t.textID != "" {
		out = append(out, api.TextEnd{ID: t.textID})
		t.textID = ""
	}
	return out
}

// Flush closes every open span, completes buffered tool calls and emits
// Finish.
func (t *Transformer) Flush() []api.StreamEvent {
	if t.done {
		return nil
	}
	t.done = true

	out := t.closeSpans()
	for _, buf := range t.tools.All() {
		out = append(out,
			api.ToolInputEnd{ID: buf.ID},
			api.ToolCall{ToolCallID: buf.ID, ToolName: buf.Name, Input: buf.Arguments()},
		)
	}
	t.tools.Clear()

	return append(out, api.Finish{FinishReason: t.finishReason, Usage: t.usage})
}

// Abort closes every open span and emits Error. Buffered tool calls are
// ended without a ToolCall since their arguments may be incomplete.
func (t *Transformer) Abort(err error) []api.StreamEvent {
	if t.done {
		return nil
	}
	t.done = true

	out := t.closeSpans()
	for _, buf := range t.tools.All() {
		out = append(out, api.ToolInputEnd{ID: buf.ID})
	}
	t.tools.Clear()

	return append(out, api.Error{Err: err})
}
