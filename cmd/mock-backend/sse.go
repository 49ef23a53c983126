package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// writerState tracks the state of an sseWriter.
type writerState int

const (
	writerIdle      writerState = iota // Initial state, no writes yet
	writerStreaming                    // WriteEvent has been called at least once
	writerCompleted                    // [DONE] sent or WriteJSON called
)

// terminalEvents are the responses event types after which [DONE] follows.
var terminalEvents = map[string]bool{
	"response.completed":  true,
	"response.incomplete": true,
	"response.failed":     true,
	"error":               true,
}

// sseWriter writes either one JSON body or a sequence of SSE frames.
type sseWriter struct {
	w     http.ResponseWriter
	rc    *http.ResponseController
	state writerState
}

func newSSEWriter(w http.ResponseWriter) *sseWriter {
	return &sseWriter{w: w, rc: http.NewResponseController(w)}
}

// WriteEvent sends one frame. An empty event name writes a data-only frame
// as the chat protocol does:
//
//	event: {name}\n
//	data: {json}\n
//	\n
//
// A terminal responses event is followed by [DONE].
func (s *sseWriter) WriteEvent(name string, payload any) error {
	if s.state == writerCompleted {
		return errors.New("cannot write event: writer is completed")
	}
	if s.state == writerIdle {
		s.w.Header().Set("Content-Type", "text/event-stream")
		s.w.Header().Set("Cache-Control", "no-cache")
		s.w.Header().Set("Connection", "keep-alive")
		s.state = writerStreaming
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if name != "" {
		if _, err := fmt.Fprintf(s.w, "event: %s\n", name); err != nil {
			return fmt.Errorf("failed to write event: %w", err)
		}
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	if err := s.rc.Flush(); err != nil {
		return fmt.Errorf("failed to flush: %w", err)
	}

	if terminalEvents[name] {
		return s.Done()
	}
	return nil
}

// Done sends the [DONE] sentinel and completes the writer.
func (s *sseWriter) Done() error {
	if s.state == writerCompleted {
		return nil
	}
	s.state = writerCompleted
	if _, err := fmt.Fprint(s.w, "data: [DONE]\n\n"); err != nil {
		return fmt.Errorf("failed to write [DONE]: %w", err)
	}
	return s.rc.Flush()
}

// WriteJSON sends a complete non-streaming body. It is mutually exclusive
// with WriteEvent.
func (s *sseWriter) WriteJSON(v any) error {
	if s.state != writerIdle {
		return errors.New("cannot write response: writer already used")
	}
	s.state = writerCompleted
	s.w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(s.w).Encode(v); err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	return nil
}
