package responses

import (
	"fmt"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
	"github.com/SweetRetry/seedkit-ai/pkg/provider"
)

// ConvertTools translates tool definitions and the tool choice. Native
// tools are looked up in the registry and their arguments validated; an
// unknown native tool is dropped with an unsupported-feature warning.
func ConvertTools(tools []provider.Tool, choice *provider.ToolChoice) ([]any, any, []api.CallWarning, error) {
	var out []any
	var warnings []api.CallWarning

	for _, t := range tools {
		switch tool := t.(type) {
		case provider.FunctionTool:
			out = append(out, FunctionTool{
				Type:        "function",
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters(),
			})
		case provider.NativeTool:
			spec, ok := provider.LookupNativeTool(tool.ID)
			if !ok {
				warnings = append(warnings, api.CallWarning{
					Type:    api.WarningUnsupportedFeature,
					Tool:    tool.ID,
					Message: fmt.Sprintf("native tool %q is not supported", tool.ID),
				})
				continue
			}
			wire, err := spec.WireTool(tool.Args)
			if err != nil {
				return nil, nil, nil, err
			}
			out = append(out, wire)
		default:
			return nil, nil, nil, api.NewInvalidArgumentError("tools", fmt.Sprintf("unsupported tool %T", t))
		}
	}

	if len(out) == 0 || choice == nil {
		return out, nil, warnings, nil
	}

	switch choice.Type {
	case provider.ToolChoiceAuto, provider.ToolChoiceNone, provider.ToolChoiceRequired:
		return out, string(choice.Type), warnings, nil
	case provider.ToolChoiceTool:
		if choice.ToolName == "" {
			return nil, nil, nil, api.NewInvalidArgumentError("tool_choice", "tool choice requires a tool name")
		}
		return out, NamedToolChoice{Type: "function", Name: choice.ToolName}, warnings, nil
	default:
		return nil, nil, nil, api.NewInvalidArgumentError("tool_choice", fmt.Sprintf("unknown tool choice %q", choice.Type))
	}
}
