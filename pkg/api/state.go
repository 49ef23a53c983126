package api

import "fmt"

// StreamState tracks open spans of an event stream and rejects events that
// break its ordering rules. The zero value expects a StreamStart first.
type StreamState struct {
	started    bool
	metadata   bool
	terminated bool
	last       StreamEventType

	text      map[string]bool
	reasoning map[string]bool
	toolInput map[string]bool
	// tool calls whose ToolInputEnd was seen but whose ToolCall was not
	toolEnded map[string]bool
}

// Observe validates ev against the events seen so far and records it.
func (s *StreamState) Observe(ev StreamEvent) *APIError {
	if s.text == nil {
		s.text = map[string]bool{}
		s.reasoning = map[string]bool{}
		s.toolInput = map[string]bool{}
		s.toolEnded = map[string]bool{}
	}

	if s.terminated {
		return s.invalid(ev, "stream already terminated")
	}
	if !s.started {
		if _, ok := ev.(StreamStart); !ok {
			return s.invalid(ev, "stream-start must come first")
		}
		s.started = true
		s.last = ev.Type()
		return nil
	}

	switch e := ev.(type) {
	case StreamStart:
		return s.invalid(ev, "duplicate stream-start")
	case ResponseMetadata:
		if s.metadata {
			return s.invalid(ev, "duplicate response-metadata")
		}
		s.metadata = true
	case TextStart:
		if s.text[e.ID] {
			return s.invalid(ev, fmt.Sprintf("text span %q already open", e.ID))
		}
		s.text[e.ID] = true
	case TextDelta:
		if !s.text[e.ID] {
			return s.invalid(ev, fmt.Sprintf("text span %q not open", e.ID))
		}
	case TextEnd:
		if !s.text[e.ID] {
			return s.invalid(ev, fmt.Sprintf("text span %q not open", e.ID))
		}
		delete(s.text, e.ID)
	case ReasoningStart:
		if s.reasoning[e.ID] {
			return s.invalid(ev, fmt.Sprintf("reasoning span %q already open", e.ID))
		}
		s.reasoning[e.ID] = true
	case ReasoningDelta:
		if !s.reasoning[e.ID] {
			return s.invalid(ev, fmt.Sprintf("reasoning span %q not open", e.ID))
		}
	case ReasoningEnd:
		if !s.reasoning[e.ID] {
			return s.invalid(ev, fmt.Sprintf("reasoning span %q not open", e.ID))
		}
		delete(s.reasoning, e.ID)
	case ToolInputStart:
		if s.toolInput[e.ID] {
			return s.invalid(ev, fmt.Sprintf("tool input %q already open", e.ID))
		}
		s.toolInput[e.ID] = true
	case ToolInputDelta:
		if !s.toolInput[e.ID] {
			return s.invalid(ev, fmt.Sprintf("tool input %q not open", e.ID))
		}
	case ToolInputEnd:
		if !s.toolInput[e.ID] {
			return s.invalid(ev, fmt.Sprintf("tool input %q not open", e.ID))
		}
		delete(s.toolInput, e.ID)
		s.toolEnded[e.ID] = true
	case ToolCall:
		if !s.toolEnded[e.ToolCallID] {
			return s.invalid(ev, fmt.Sprintf("tool call %q before its tool-input-end", e.ToolCallID))
		}
		delete(s.toolEnded, e.ToolCallID)
	case Finish:
		if err := s.checkClosed(ev); err != nil {
			return err
		}
		for id := range s.toolEnded {
			return s.invalid(ev, fmt.Sprintf("tool input %q ended without a tool call", id))
		}
		s.terminated = true
	case Error:
		// Aborted tool inputs may end without a ToolCall.
		if err := s.checkClosed(ev); err != nil {
			return err
		}
		s.terminated = true
	default:
		return s.invalid(ev, fmt.Sprintf("unknown event %T", ev))
	}
	s.last = ev.Type()
	return nil
}

// Terminated reports whether a Finish or Error has been observed.
func (s *StreamState) Terminated() bool {
	return s.terminated
}

func (s *StreamState) checkClosed(ev StreamEvent) *APIError {
	for id := range s.text {
		return s.invalid(ev, fmt.Sprintf("text span %q still open", id))
	}
	for id := range s.reasoning {
		return s.invalid(ev, fmt.Sprintf("reasoning span %q still open", id))
	}
	for id := range s.toolInput {
		return s.invalid(ev, fmt.Sprintf("tool input %q still open", id))
	}
	return nil
}

func (s *StreamState) invalid(ev StreamEvent, reason string) *APIError {
	from := string(s.last)
	if from == "" {
		from = "start"
	}
	return NewServerError(fmt.Sprintf("invalid transition from %s to %s: %s", from, ev.Type(), reason))
}

// ValidateStreamSequence checks a complete event sequence: every span is
// closed and exactly one terminal event ends it.
func ValidateStreamSequence(events []StreamEvent) *APIError {
	var s StreamState
	for _, ev := range events {
		if err := s.Observe(ev); err != nil {
			return err
		}
	}
	if !s.terminated {
		return NewServerError("invalid stream: no finish or error event")
	}
	return nil
}
