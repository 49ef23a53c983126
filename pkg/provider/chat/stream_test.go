package chat

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
)

// run feeds chunks to a fresh transformer and flushes it.
func run(chunks ...string) []api.StreamEvent {
	tr := NewTransformer()
	var events []api.StreamEvent
	for _, c := range chunks {
		events = append(events, tr.Accept([]byte(c))...)
	}
	return append(events, tr.Flush()...)
}

// withStart prefixes events with StreamStart so the sequence can be
// checked by api.ValidateStreamSequence.
func withStart(events []api.StreamEvent) []api.StreamEvent {
	return append([]api.StreamEvent{api.StreamStart{}}, events...)
}

func TestTransformerTextAndToolCall(t *testing.T) {
	got := run(
		`{"choices":[{"index":0,"delta":{"reasoning_content":"Thinking..."}}]}`,
		`{"choices":[{"index":0,"delta":{"content":"Answer"}}]}`,
		`{"choices":[{"index":0,"delta":{"tool_calls":[{"index":0,"function":{"name":"get_weather","arguments":""}}]}}]}`,
		`{"choices":[{"index":0,"delta":{},"finish_reason":"tool_calls"}]}`,
	)

	want := []api.StreamEvent{
		api.ReasoningStart{ID: "reasoning-0"},
		api.ReasoningDelta{ID: "reasoning-0", Delta: "Thinking..."},
		api.TextStart{ID: "txt-0"},
		api.TextDelta{ID: "txt-0", Delta: "Answer"},
		api.ToolInputStart{ID: "call_0", ToolName: "get_weather"},
		api.ReasoningEnd{ID: "reasoning-0"},
		api.TextEnd{ID: "txt-0"},
		api.ToolInputEnd{ID: "call_0"},
		api.ToolCall{ToolCallID: "call_0", ToolName: "get_weather", Input: "{}"},
		api.Finish{FinishReason: api.FinishReason{Unified: api.FinishReasonToolCalls, Raw: "tool_calls"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if err := api.ValidateStreamSequence(withStart(got)); err != nil {
		t.Errorf("invalid sequence: %v", err)
	}
}

func TestTransformerToolArgumentsAcrossChunks(t *testing.T) {
	got := run(
		`{"id":"c1","model":"doubao","created":1718000000,"choices":[{"index":0,"delta":{"tool_calls":[{"index":0,"id":"call_abc","type":"function","function":{"name":"get_weather","arguments":"{"}}]}}]}`,
		`{"id":"c1","choices":[{"index":0,"delta":{"tool_calls":[{"index":0,"function":{"arguments":"\"location\":\"Beij"}}]}}]}`,
		`{"id":"c1","choices":[{"index":0,"delta":{"tool_calls":[{"index":0,"function":{"arguments":"ing\"}"}}]}}]}`,
		`{"id":"c1","choices":[{"index":0,"delta":{},"finish_reason":"tool_calls"}]}`,
	)

	var starts, deltas, ends int
	var calls []api.ToolCall
	for _, ev := range got {
		switch e := ev.(type) {
		case api.ToolInputStart:
			starts++
		case api.ToolInputDelta:
			deltas++
		case api.ToolInputEnd:
			ends++
		case api.ToolCall:
			calls = append(calls, e)
		}
	}
	if starts != 1 || deltas < 2 || ends != 1 || len(calls) != 1 {
		t.Fatalf("starts=%d deltas=%d ends=%d calls=%d", starts, deltas, ends, len(calls))
	}
	if calls[0].Input != `{"location":"Beijing"}` {
		t.Errorf("Input = %q, want %q", calls[0].Input, `{"location":"Beijing"}`)
	}
	if calls[0].ToolCallID != "call_abc" {
		t.Errorf("ToolCallID = %q, want call_abc", calls[0].ToolCallID)
	}
	if md, ok := got[0].(api.ResponseMetadata); !ok || md.ID != "c1" || md.ModelID != "doubao" {
		t.Errorf("first event = %+v, want ResponseMetadata for c1", got[0])
	}
	if err := api.ValidateStreamSequence(withStart(got)); err != nil {
		t.Errorf("invalid sequence: %v", err)
	}
}

func TestTransformerIdempotent(t *testing.T) {
	chunks := []string{
		`{"id":"c9","choices":[{"index":0,"delta":{"role":"assistant","content":"Hel"}}]}`,
		`{"id":"c9","choices":[{"index":0,"delta":{"content":"lo"}}]}`,
		`{"id":"c9","choices":[{"index":0,"delta":{"tool_calls":[{"index":0,"function":{"name":"a","arguments":"{}"}},{"index":1,"function":{"name":"b"}}]}}]}`,
		`{"id":"c9","choices":[{"index":0,"delta":{},"finish_reason":"tool_calls"}],"usage":{"prompt_tokens":3,"completion_tokens":5}}`,
	}

	first := run(chunks...)
	second := run(chunks...)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("replay differs (-first +second):\n%s", diff)
	}

	var ids []string
	for _, ev := range first {
		if c, ok := ev.(api.ToolCall); ok {
			ids = append(ids, c.ToolCallID)
		}
	}
	if diff := cmp.Diff([]string{"call_c9_0", "call_c9_1"}, ids); diff != "" {
		t.Errorf("fallback ids mismatch (-want +got):\n%s", diff)
	}
}

func TestTransformerUsageLastWriteWins(t *testing.T) {
	got := run(
		`{"choices":[{"index":0,"delta":{"content":"a"}}],"usage":{"prompt_tokens":1,"completion_tokens":1}}`,
		`{"choices":[{"index":0,"delta":{"content":"b"},"finish_reason":"stop"}],"usage":null}`,
		`{"choices":[],"usage":{"prompt_tokens":10,"completion_tokens":4,"completion_tokens_details":{"reasoning_tokens":3}}}`,
	)

	fin, ok := got[len(got)-1].(api.Finish)
	if !ok {
		t.Fatalf("last event = %T, want api.Finish", got[len(got)-1])
	}
	if fin.FinishReason.Unified != api.FinishReasonStop {
		t.Errorf("finish = %+v, want stop", fin.FinishReason)
	}
	if *fin.Usage.InputTotal != 10 || *fin.Usage.OutputTotal != 4 || *fin.Usage.OutputText != 1 {
		t.Errorf("usage = in %d out %d text %d, want 10/4/1",
			*fin.Usage.InputTotal, *fin.Usage.OutputTotal, *fin.Usage.OutputText)
	}
}

func TestTransformerEmptyStream(t *testing.T) {
	got := run()
	want := []api.StreamEvent{
		api.Finish{FinishReason: api.FinishReason{Unified: api.FinishReasonOther}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestTransformerLateToolName(t *testing.T) {
	got := run(
		`{"choices":[{"index":0,"delta":{"tool_calls":[{"index":0,"id":"call_x","function":{"arguments":"{\"q\":1}"}}]}}]}`,
		`{"choices":[{"index":0,"delta":{"tool_calls":[{"index":0,"function":{"name":"search"}}]}}]}`,
	)
	var call api.ToolCall
	for _, ev := range got {
		if c, ok := ev.(api.ToolCall); ok {
			call = c
		}
	}
	if call.ToolName != "search" || call.Input != `{"q":1}` {
		t.Errorf("tool call = %+v", call)
	}
}

func TestTransformerMalformedChunk(t *testing.T) {
	tr := NewTransformer()
	var got []api.StreamEvent
	for _, c := range []string{
		`{"choices":[{"index":0,"delta":{"reasoning_content":"hmm"}}]}`,
		`{"choices":[{"index":0,"delta":{"content":"partial"}}]}`,
		`{"choices":[{"index":0,"delta":{"tool_calls":[{"index":0,"id":"call_1","function":{"name":"f","arguments":"{\"a\""}}]}}]}`,
		`{"choices":[{"index":0,"delta":{"content":`,
		`{"choices":[{"index":0,"delta":{"content":"ignored"}}]}`,
	} {
		got = append(got, tr.Accept([]byte(c))...)
	}
	got = append(got, tr.Flush()...)

	if !tr.Done() {
		t.Error("transformer should be done after a malformed chunk")
	}

	tail := got[len(got)-4:]
	wantTail := []api.StreamEvent{
		api.ReasoningEnd{ID: "reasoning-0"},
		api.TextEnd{ID: "txt-0"},
		api.ToolInputEnd{ID: "call_1"},
	}
	if diff := cmp.Diff(wantTail, tail[:3]); diff != "" {
		t.Errorf("closing events mismatch (-want +got):\n%s", diff)
	}
	e, ok := tail[3].(api.Error)
	if !ok {
		t.Fatalf("last event = %T, want api.Error", tail[3])
	}
	if !errors.Is(e.Err, api.ErrMalformedChunk) {
		t.Errorf("error = %v, want malformed_chunk", e.Err)
	}
	for _, ev := range got {
		if _, ok := ev.(api.ToolCall); ok {
			t.Error("aborted stream must not emit a ToolCall")
		}
	}
	if err := api.ValidateStreamSequence(withStart(got)); err != nil {
		t.Errorf("invalid sequence: %v", err)
	}
}

func TestTransformerInStreamError(t *testing.T) {
	tr := NewTransformer()
	got := tr.Accept([]byte(`{"choices":[{"index":0,"delta":{"content":"a"}}]}`))
	got = append(got, tr.Accept([]byte(`{"error":{"message":"content moderation","code":"SensitiveContent"}}`))...)

	e, ok := got[len(got)-1].(api.Error)
	if !ok {
		t.Fatalf("last event = %T, want api.Error", got[len(got)-1])
	}
	var apiErr *api.APIError
	if !errors.As(e.Err, &apiErr) || apiErr.Type != api.ErrorTypeFailedRequest || apiErr.Message != "content moderation" {
		t.Errorf("error = %v, want failed_request carrying the vendor message", e.Err)
	}
	if tr.Flush() != nil {
		t.Error("Flush after Error must return nil")
	}
}
