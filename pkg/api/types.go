package api

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// Role identifies the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one entry of a conversation. The concrete type is one of
// SystemMessage, UserMessage, AssistantMessage or ToolMessage.
type Message interface {
	Role() Role
	isMessage()
}

// SystemMessage carries instructions for the model.
type SystemMessage struct {
	Text string
}

// UserMessage carries user-authored text and files.
type UserMessage struct {
	Parts []UserPart
}

// AssistantMessage carries earlier model output: text, reasoning and tool calls.
type AssistantMessage struct {
	Parts []AssistantPart
}

// ToolMessage carries the results of tool calls made by the assistant.
type ToolMessage struct {
	Results []ToolResultPart
}

func (SystemMessage) Role() Role    { return RoleSystem }
func (UserMessage) Role() Role      { return RoleUser }
func (AssistantMessage) Role() Role { return RoleAssistant }
func (ToolMessage) Role() Role      { return RoleTool }

func (SystemMessage) isMessage()    {}
func (UserMessage) isMessage()      {}
func (AssistantMessage) isMessage() {}
func (ToolMessage) isMessage()      {}

// UserPart is a part of a user message: TextPart or FilePart.
type UserPart interface {
	isUserPart()
}

// AssistantPart is a part of an assistant message: TextPart, ReasoningPart
// or ToolCallPart.
type AssistantPart interface {
	isAssistantPart()
}

// TextPart is plain text. It is valid in both user and assistant messages.
type TextPart struct {
	Text string
}

// FilePart references a file by URL or carries it inline.
type FilePart struct {
	Data      FileData
	MediaType string
	// Filename is optional; PDF parts default it to "document.pdf".
	Filename string
}

// ReasoningPart is reasoning text produced by the model in an earlier turn.
type ReasoningPart struct {
	Text string
}

// ToolCallPart is a tool invocation produced by the model in an earlier turn.
// Input is either a string holding JSON arguments verbatim or any value
// that encodes to a JSON object.
type ToolCallPart struct {
	ToolCallID string
	ToolName   string
	Input      any
}

func (TextPart) isUserPart()           {}
func (FilePart) isUserPart()           {}
func (TextPart) isAssistantPart()      {}
func (ReasoningPart) isAssistantPart() {}
func (ToolCallPart) isAssistantPart()  {}

// InputString returns the tool call arguments as a wire string. Strings pass
// through unchanged; other values are encoded as compact JSON.
func (p ToolCallPart) InputString() (string, error) {
	switch v := p.Input.(type) {
	case nil:
		return "{}", nil
	case string:
		return v, nil
	case json.RawMessage:
		return string(v), nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("encoding input of tool call %q: %w", p.ToolCallID, err)
		}
		return string(data), nil
	}
}

// FileData is the payload of a FilePart: URLData, Base64Data or BytesData.
type FileData interface {
	isFileData()
}

// URLData references a file by URL.
type URLData struct {
	URL string
}

// Base64Data carries base64 content, optionally already wrapped in a data URI.
type Base64Data struct {
	Data string
}

// BytesData carries raw file bytes.
type BytesData struct {
	Data []byte
}

func (URLData) isFileData()    {}
func (Base64Data) isFileData() {}
func (BytesData) isFileData()  {}

// FileDataURL returns the wire form of a file payload: URLs are returned as
// is, inline data becomes "data:<mediaType>;base64,<payload>". Base64 input
// that already carries a data URI prefix is returned unchanged.
func FileDataURL(data FileData, mediaType string) (string, error) {
	switch d := data.(type) {
	case URLData:
		return d.URL, nil
	case Base64Data:
		if strings.HasPrefix(d.Data, "data:") {
			return d.Data, nil
		}
		return "data:" + mediaType + ";base64," + d.Data, nil
	case BytesData:
		return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(d.Data), nil
	default:
		return "", NewInvalidArgumentError("data", fmt.Sprintf("unsupported file data %T", data))
	}
}

// IsURL reports whether the file payload is a URL reference.
func IsURL(data FileData) bool {
	_, ok := data.(URLData)
	return ok
}

// ToolResultPart is the result of one tool call.
type ToolResultPart struct {
	ToolCallID string
	ToolName   string
	Output     ToolResultOutput
}

// ToolResultOutput is the payload of a tool result: TextOutput,
// ErrorTextOutput, JSONOutput, ErrorJSONOutput, ExecutionDeniedOutput or
// ContentOutput.
type ToolResultOutput interface {
	isToolResultOutput()
}

type TextOutput struct {
	Value string
}

type ErrorTextOutput struct {
	Value string
}

type JSONOutput struct {
	Value any
}

type ErrorJSONOutput struct {
	Value any
}

// ExecutionDeniedOutput reports that the host refused to run the tool.
type ExecutionDeniedOutput struct {
	Reason string
}

// ContentOutput is a list of text and media sub-parts.
type ContentOutput struct {
	Parts []ToolResultContent
}

func (TextOutput) isToolResultOutput()            {}
func (ErrorTextOutput) isToolResultOutput()       {}
func (JSONOutput) isToolResultOutput()            {}
func (ErrorJSONOutput) isToolResultOutput()       {}
func (ExecutionDeniedOutput) isToolResultOutput() {}
func (ContentOutput) isToolResultOutput()         {}

// ToolResultContent is a sub-part of ContentOutput: ToolResultText or
// ToolResultMedia.
type ToolResultContent interface {
	isToolResultContent()
}

type ToolResultText struct {
	Text string
}

type ToolResultMedia struct {
	Data      string
	MediaType string
}

func (ToolResultText) isToolResultContent()  {}
func (ToolResultMedia) isToolResultContent() {}

// DefaultDeniedMessage is sent when a tool execution was denied without a reason.
const DefaultDeniedMessage = "Tool execution denied."

// ToolResultString reduces a tool result output to the single string sent
// on the wire.
func ToolResultString(out ToolResultOutput) (string, error) {
	switch o := out.(type) {
	case TextOutput:
		return o.Value, nil
	case ErrorTextOutput:
		return o.Value, nil
	case JSONOutput:
		return marshalCompact(o.Value)
	case ErrorJSONOutput:
		return marshalCompact(o.Value)
	case ExecutionDeniedOutput:
		if o.Reason != "" {
			return o.Reason, nil
		}
		return DefaultDeniedMessage, nil
	case ContentOutput:
		var texts []string
		for _, p := range o.Parts {
			if t, ok := p.(ToolResultText); ok {
				texts = append(texts, t.Text)
			}
		}
		return strings.Join(texts, "\n"), nil
	default:
		return "", NewInvalidArgumentError("output", fmt.Sprintf("unsupported tool result output %T", out))
	}
}

func marshalCompact(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding tool result: %w", err)
	}
	return string(data), nil
}
