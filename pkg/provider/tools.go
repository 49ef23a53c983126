package provider

import "encoding/json"

// Tool is a tool offered to the model: FunctionTool or NativeTool.
type Tool interface {
	isTool()
}

// FunctionTool is a caller-defined function described by a JSON schema.
type FunctionTool struct {
	Name        string
	Description string
	InputSchema json.RawMessage
}

// NativeTool is a vendor-executed capability identified by a registry id
// such as "ark.web_search".
type NativeTool struct {
	ID   string
	Name string
	Args map[string]any
}

func (FunctionTool) isTool() {}
func (NativeTool) isTool()   {}

// ToolChoiceType selects how the model may use tools.
type ToolChoiceType string

const (
	ToolChoiceAuto     ToolChoiceType = "auto"
	ToolChoiceNone     ToolChoiceType = "none"
	ToolChoiceRequired ToolChoiceType = "required"
	ToolChoiceTool     ToolChoiceType = "tool"
)

// ToolChoice constrains tool use. ToolName is set for ToolChoiceTool.
type ToolChoice struct {
	Type     ToolChoiceType
	ToolName string
}

// emptyObjectSchema is sent for function tools without a schema.
var emptyObjectSchema = json.RawMessage(`{"type":"object","properties":{}}`)

// Parameters returns the tool input schema, defaulting to an empty object schema.
func (t FunctionTool) Parameters() json.RawMessage {
	if len(t.InputSchema) == 0 {
		return emptyObjectSchema
	}
	return t.InputSchema
}
