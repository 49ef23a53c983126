package main

import (
	"net/http/httptest"
	"testing"
)

func TestSSEWriterFormat(t *testing.T) {
	tests := []struct {
		name  string
		event string
		want  string
	}{
		{"data only", "", "data: {\"a\":1}\n\n"},
		{"named", "response.output_text.delta", "event: response.output_text.delta\ndata: {\"a\":1}\n\n"},
		{"terminal", "response.completed", "event: response.completed\ndata: {\"a\":1}\n\ndata: [DONE]\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			sw := newSSEWriter(rec)
			if err := sw.WriteEvent(tt.event, map[string]int{"a": 1}); err != nil {
				t.Fatalf("WriteEvent error: %v", err)
			}
			if got := rec.Body.String(); got != tt.want {
				t.Errorf("body = %q, want %q", got, tt.want)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
				t.Errorf("Content-Type = %q, want text/event-stream", ct)
			}
		})
	}
}

func TestSSEWriterStateTransitions(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := newSSEWriter(rec)
	sw.WriteEvent("", map[string]int{})
	if err := sw.WriteJSON(map[string]int{}); err == nil {
		t.Error("expected error for WriteJSON after WriteEvent, got nil")
	}
	if err := sw.Done(); err != nil {
		t.Fatalf("Done error: %v", err)
	}
	if err := sw.Done(); err != nil {
		t.Errorf("second Done error = %v, want nil", err)
	}
	if err := sw.WriteEvent("", map[string]int{}); err == nil {
		t.Error("expected error after [DONE], got nil")
	}

	rec = httptest.NewRecorder()
	sw = newSSEWriter(rec)
	if err := sw.WriteJSON(map[string]string{"id": "x"}); err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if err := sw.WriteEvent("", map[string]int{}); err == nil {
		t.Error("expected error for WriteEvent after WriteJSON, got nil")
	}
}
