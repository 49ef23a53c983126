package api

import "time"

// StreamEventType identifies the type of a streaming event.
type StreamEventType string

const (
	EventStreamStart      StreamEventType = "stream-start"
	EventResponseMetadata StreamEventType = "response-metadata"
	EventTextStart        StreamEventType = "text-start"
	EventTextDelta        StreamEventType = "text-delta"
	EventTextEnd          StreamEventType = "text-end"
	EventReasoningStart   StreamEventType = "reasoning-start"
	EventReasoningDelta   StreamEventType = "reasoning-delta"
	EventReasoningEnd     StreamEventType = "reasoning-end"
	EventToolInputStart   StreamEventType = "tool-input-start"
	EventToolInputDelta   StreamEventType = "tool-input-delta"
	EventToolInputEnd     StreamEventType = "tool-input-end"
	EventToolCall         StreamEventType = "tool-call"
	EventFinish           StreamEventType = "finish"
	EventError            StreamEventType = "error"
)

// StreamEvent is one normalized streaming event. Events of a stream are
// emitted in order: StreamStart, at most one ResponseMetadata, any
// interleaving of text, reasoning and tool-input spans, and exactly one
// terminal Finish or Error.
type StreamEvent interface {
	Type() StreamEventType
	isStreamEvent()
}

// StreamStart opens a stream and carries request-construction warnings.
type StreamStart struct {
	Warnings []CallWarning
}

// ResponseMetadata identifies the vendor response backing the stream.
type ResponseMetadata struct {
	ID        string
	ModelID   string
	Timestamp time.Time
}

type TextStart struct {
	ID string
}

type TextDelta struct {
	ID    string
	Delta string
}

type TextEnd struct {
	ID string
}

type ReasoningStart struct {
	ID string
}

type ReasoningDelta struct {
	ID    string
	Delta string
}

type ReasoningEnd struct {
	ID string
}

// ToolInputStart opens the argument stream of a tool call. ID is the tool
// call id.
type ToolInputStart struct {
	ID       string
	ToolName string
}

type ToolInputDelta struct {
	ID    string
	Delta string
}

type ToolInputEnd struct {
	ID string
}

// ToolCall is the completed tool call. It always follows the ToolInputEnd of
// the same id.
type ToolCall struct {
	ToolCallID string
	ToolName   string
	Input      string
}

// Finish terminates a successful stream.
type Finish struct {
	FinishReason FinishReason
	Usage        Usage
}

// Error terminates a failed stream. Open spans are closed before it.
type Error struct {
	Err error
}

func (StreamStart) Type() StreamEventType      { return EventStreamStart }
func (ResponseMetadata) Type() StreamEventType { return EventResponseMetadata }
func (TextStart) Type() StreamEventType        { return EventTextStart }
func (TextDelta) Type() StreamEventType        { return EventTextDelta }
func (TextEnd) Type() StreamEventType          { return EventTextEnd }
func (ReasoningStart) Type() StreamEventType   { return EventReasoningStart }
func (ReasoningDelta) Type() StreamEventType   { return EventReasoningDelta }
func (ReasoningEnd) Type() StreamEventType     { return EventReasoningEnd }
func (ToolInputStart) Type() StreamEventType   { return EventToolInputStart }
func (ToolInputDelta) Type() StreamEventType   { return EventToolInputDelta }
func (ToolInputEnd) Type() StreamEventType     { return EventToolInputEnd }
func (ToolCall) Type() StreamEventType         { return EventToolCall }
func (Finish) Type() StreamEventType           { return EventFinish }
func (Error) Type() StreamEventType            { return EventError }

func (StreamStart) isStreamEvent()      {}
func (ResponseMetadata) isStreamEvent() {}
func (TextStart) isStreamEvent()        {}
func (TextDelta) isStreamEvent()        {}
func (TextEnd) isStreamEvent()          {}
func (ReasoningStart) isStreamEvent()   {}
func (ReasoningDelta) isStreamEvent()   {}
func (ReasoningEnd) isStreamEvent()     {}
func (ToolInputStart) isStreamEvent()   {}
func (ToolInputDelta) isStreamEvent()   {}
func (ToolInputEnd) isStreamEvent()     {}
func (ToolCall) isStreamEvent()         {}
func (Finish) isStreamEvent()           {}
func (Error) isStreamEvent()            {}

// IsTerminal reports whether the event ends a stream.
func IsTerminal(ev StreamEvent) bool {
	switch ev.(type) {
	case Finish, Error:
		return true
	default:
		return false
	}
}
