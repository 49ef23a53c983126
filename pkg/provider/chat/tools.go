package chat

import (
	"fmt"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
	"github.com/SweetRetry/seedkit-ai/pkg/provider"
)

// ConvertTools translates tool definitions and the tool choice. The chat
// protocol has no native tools; they are dropped with an unsupported-tool
// warning. Without any tools the choice is omitted.
func ConvertTools(tools []provider.Tool, choice *provider.ToolChoice) ([]Tool, any, []api.CallWarning, error) {
	var out []Tool
	var warnings []api.CallWarning

	for _, t := range tools {
		switch tool := t.(type) {
		case provider.FunctionTool:
			out = append(out, Tool{
				Type: "function",
				Function: ToolFunction{
					Name:        tool.Name,
					Description: tool.Description,
					Parameters:  tool.Parameters(),
				},
			})
		case provider.NativeTool:
			warnings = append(warnings, api.CallWarning{
				Type:    api.WarningUnsupportedTool,
				Tool:    tool.ID,
				Message: "native tools require the responses protocol",
			})
		default:
			return nil, nil, nil, api.NewInvalidArgumentError("tools", fmt.Sprintf("unsupported tool %T", t))
		}
	}

	if len(out) == 0 || choice == nil {
		return out, nil, warnings, nil
	}

	tc, err := convertToolChoice(choice)
	if err != nil {
		return nil, nil, nil, err
	}
	return out, tc, warnings, nil
}

func convertToolChoice(choice *provider.ToolChoice) (any, error) {
	switch choice.Type {
	case provider.ToolChoiceAuto, provider.ToolChoiceNone, provider.ToolChoiceRequired:
		return string(choice.Type), nil
	case provider.ToolChoiceTool:
		if choice.ToolName == "" {
			return nil, api.NewInvalidArgumentError("tool_choice", "tool choice requires a tool name")
		}
		return NamedToolChoice{
			Type:     "function",
			Function: NamedToolFunction{Name: choice.ToolName},
		}, nil
	default:
		return nil, api.NewInvalidArgumentError("tool_choice", fmt.Sprintf("unknown tool choice %q", choice.Type))
	}
}
