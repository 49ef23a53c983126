package responses

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/tidwall/gjson"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
	"github.com/SweetRetry/seedkit-ai/pkg/debug"
	"github.com/SweetRetry/seedkit-ai/pkg/provider"
)

// Transformer turns responses stream events into normalized events. It is
// not safe for concurrent use; each stream owns a fresh instance.
type Transformer struct {
	metadataSent bool
	openText     []string
	reasoningID  string

	tools        *provider.ToolBuffers[string]
	hasToolCalls bool
	terminal     bool
	finishReason api.FinishReason
	usage        api.Usage
	done         bool
}

// NewTransformer returns a transformer for one stream.
func NewTransformer() *Transformer {
	return &Transformer{
		tools:        provider.NewToolBuffers[string](),
		finishReason: api.FinishReason{Unified: api.FinishReasonOther},
	}
}

var _ provider.StreamTransformer = (*Transformer)(nil)

// Protocol implements provider.StreamTransformer.
func (t *Transformer) Protocol() provider.Protocol { return provider.ProtocolResponses }

// Done implements provider.StreamTransformer.
func (t *Transformer) Done() bool { return t.done }

// Accept processes one SSE data payload. The event type is read from the
// payload's "type" field.
func (t *Transformer) Accept(data []byte) []api.StreamEvent {
	if t.done {
		return nil
	}
	if !gjson.ValidBytes(data) {
		return t.malformed(data, errors.New("invalid JSON"))
	}
	typ := gjson.GetBytes(data, "type")
	if typ.Type != gjson.String {
		return t.malformed(data, errors.New("missing event type"))
	}

	out, err := t.dispatch(typ.Str, data)
	if err != nil {
		return append(out, t.malformed(data, err)...)
	}
	return out
}

func (t *Transformer) dispatch(typ string, data []byte) ([]api.StreamEvent, error) {
	switch typ {
	case eventResponseCreated:
		var d responseEventData
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		return t.metadata(d.Response), nil

	case eventOutputItemAdded:
		var d itemEventData
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		return t.itemAdded(d), nil

	case eventOutputItemDone:
		var d itemEventData
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		return t.itemDone(d), nil

	case eventTextDelta:
		var d deltaEventData
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		var out []api.StreamEvent
		if !slices.Contains(t.openText, d.ItemID) {
			t.openText = append(t.openText, d.ItemID)
			out = append(out, api.TextStart{ID: d.ItemID})
		}
		return append(out, api.TextDelta{ID: d.ItemID, Delta: d.Delta}), nil

	case eventReasoningDelta:
		var d deltaEventData
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		if t.reasoningID == "" {
			return nil, nil
		}
		return []api.StreamEvent{api.ReasoningDelta{ID: t.reasoningID, Delta: d.Delta}}, nil

	case eventFuncCallArgsDelta:
		var d deltaEventData
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		buf, ok := t.tools.Get(d.ItemID)
		if !ok {
			debug.Log("streaming", "arguments for unknown function call", "item_id", d.ItemID)
			return nil, nil
		}
		buf.Args.WriteString(d.Delta)
		return []api.StreamEvent{api.ToolInputDelta{ID: buf.ID, Delta: d.Delta}}, nil

	case eventFuncCallArgsDone:
		var d argsDoneEventData
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		if buf, ok := t.tools.Get(d.ItemID); ok {
			buf.SetArguments(d.Arguments)
		}
		return nil, nil

	case eventResponseCompleted, eventResponseIncomplete:
		var d responseEventData
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		t.terminal = true
		t.finishReason = provider.MapResponsesFinishReason(incompleteReason(d.Response), t.hasToolCalls)
		usage, ok, err := parseUsage(d.Response.Usage)
		if err != nil {
			return nil, err
		}
		if ok {
			t.usage = usage
		}
		return nil, nil

	case eventResponseFailed:
		msg := gjson.GetBytes(data, "response.error.message").String()
		if msg == "" {
			msg = "Ark response failed"
		}
		apiErr := api.NewFailedRequestError(0, msg)
		apiErr.Code = gjson.GetBytes(data, "response.error.code").String()
		return t.Abort(apiErr), nil

	case eventError:
		var d errorEventData
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		if d.Message == "" {
			d.Message = gjson.GetBytes(data, "error.message").String()
		}
		apiErr := api.NewFailedRequestError(0, d.Message)
		apiErr.Code = d.Code
		return t.Abort(apiErr), nil

	case eventResponseInProgress, eventContentPartAdded, eventContentPartDone, eventTextDone,
		eventReasoningPartAdded, eventReasoningPartDone, eventReasoningDone:
		return nil, nil

	default:
		debug.Log("streaming", "skipping responses event", "type", typ)
		return nil, nil
	}
}

func (t *Transformer) metadata(resp Response) []api.StreamEvent {
	if t.metadataSent {
		return nil
	}
	t.metadataSent = true
	md := api.ResponseMetadata{ID: resp.ID, ModelID: resp.Model}
	if resp.CreatedAt > 0 {
		md.Timestamp = time.Unix(resp.CreatedAt, 0).UTC()
	}
	return []api.StreamEvent{md}
}

func (t *Transformer) itemAdded(d itemEventData) []api.StreamEvent {
	item := d.Item
	switch item.Type {
	case itemMessage:
		id := spanID(item, d.OutputIndex)
		if slices.Contains(t.openText, id) {
			return nil
		}
		t.openText = append(t.openText, id)
		return []api.StreamEvent{api.TextStart{ID: id}}

	case itemReasoning:
		var out []api.StreamEvent
		if t.reasoningID != "" {
			out = append(out, api.ReasoningEnd{ID: t.reasoningID})
		}
		t.reasoningID = spanID(item, d.OutputIndex)
		return append(out, api.ReasoningStart{ID: t.reasoningID})

	case itemFunctionCall:
		id := item.CallID
		if id == "" {
			id = spanID(item, d.OutputIndex)
		}
		buf := t.tools.Add(spanID(item, d.OutputIndex), id, item.Name)
		out := []api.StreamEvent{api.ToolInputStart{ID: buf.ID, ToolName: buf.Name}}
		if item.Arguments != "" {
			buf.Args.WriteString(item.Arguments)
			out = append(out, api.ToolInputDelta{ID: buf.ID, Delta: item.Arguments})
		}
		return out

	default:
		debug.Log("streaming", "skipping output item", "type", item.Type, "id", item.ID)
		return nil
	}
}

func (t *Transformer) itemDone(d itemEventData) []api.StreamEvent {
	item := d.Item
	switch item.Type {
	case itemMessage:
		id := spanID(item, d.OutputIndex)
		i := slices.Index(t.openText, id)
		if i < 0 {
			return nil
		}
		t.openText = slices.Delete(t.openText, i, i+1)
		return []api.StreamEvent{api.TextEnd{ID: id}}

	case itemReasoning:
		if t.reasoningID == "" {
			return nil
		}
		id := t.reasoningID
		t.reasoningID = ""
		return []api.StreamEvent{api.ReasoningEnd{ID: id}}

	case itemFunctionCall:
		key := spanID(item, d.OutputIndex)
		buf, ok := t.tools.Get(key)
		var out []api.StreamEvent
		if !ok {
			// Never announced: open and close it in one go.
			id := item.CallID
			if id == "" {
				id = key
			}
			buf = &provider.ToolCallBuffer{ID: id, Name: item.Name}
			out = append(out, api.ToolInputStart{ID: buf.ID, ToolName: buf.Name})
		}
		if buf.Args.Len() == 0 && item.Arguments != "" {
			buf.SetArguments(item.Arguments)
		}
		if buf.Name == "" {
			buf.Name = item.Name
		}
		t.tools.Delete(key)
		t.hasToolCalls = true
		return append(out,
			api.ToolInputEnd{ID: buf.ID},
			api.ToolCall{ToolCallID: buf.ID, ToolName: buf.Name, Input: buf.Arguments()},
		)

	default:
		return nil
	}
}

// spanID returns the item id, or a positional id for items without one.
func spanID(item OutputItem, outputIndex int) string {
	if item.ID != "" {
		return item.ID
	}
	return fmt.Sprintf("item-%d", outputIndex)
}

// closeSpans ends the open reasoning span and then open text spans.
func (t *Transformer) closeSpans() []api.StreamEvent {
	var out []api.StreamEvent
	if t.reasoningID != "" {
		out = append(out, api.ReasoningEnd{ID: t.reasoningID})
		t.reasoningID = ""
	}
	for _, id := range t.openText {
		out = append(out, api.TextEnd{ID: id})
	}
	t.openText = nil
	return out
}

// Flush closes open spans, completes function calls that never received
// output_item.done and emits Finish.
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

	// Without a terminal event there is no status to map; calls still win.
	if !t.terminal && t.hasToolCalls {
		t.finishReason = provider.MapResponsesFinishReason("", true)
	}
	return append(out, api.Finish{FinishReason: t.finishReason, Usage: t.usage})
}

// Abort closes open spans and emits Error. Unfinished function calls get
// ToolInputEnd without a ToolCall.
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

func (t *Transformer) malformed(data []byte, err error) []api.StreamEvent {
	slog.Warn("malformed responses event", "error", err, "data", debug.Truncate(string(data), 200))
	return t.Abort(api.NewMalformedChunkError(err))
}
