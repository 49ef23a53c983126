package responses

import (
	"fmt"
	"strings"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
	"github.com/SweetRetry/seedkit-ai/pkg/provider"
)

// ConvertMessages translates a prompt into the input array and the
// instructions string. System messages are joined with newlines into the
// instructions; every other message keeps its position in the input.
// Video parts have no responses representation and are dropped with a
// warning.
func ConvertMessages(prompt []api.Message) ([]InputItem, string, []api.CallWarning, error) {
	var items []InputItem
	var system []string
	var warnings []api.CallWarning

	for _, msg := range prompt {
		switch m := msg.(type) {
		case api.SystemMessage:
			system = append(system, m.Text)

		case api.UserMessage:
			content, w, err := convertUserContent(m.Parts)
			if err != nil {
				return nil, "", nil, err
			}
			warnings = append(warnings, w...)
			if len(content) > 0 {
				items = append(items, MessageItem{Type: "message", Role: "user", Content: content})
			}

		case api.AssistantMessage:
			converted, err := convertAssistant(m)
			if err != nil {
				return nil, "", nil, err
			}
			items = append(items, converted...)

		case api.ToolMessage:
			for _, r := range m.Results {
				out, err := api.ToolResultString(r.Output)
				if err != nil {
					return nil, "", nil, err
				}
				items = append(items, FunctionCallOutputItem{
					Type:   "function_call_output",
					CallID: r.ToolCallID,
					Output: out,
				})
			}

		default:
			return nil, "", nil, api.NewInvalidArgumentError("prompt", fmt.Sprintf("unsupported message type %T", msg))
		}
	}
	return items, strings.Join(system, "\n"), warnings, nil
}

func convertUserContent(parts []api.UserPart) ([]InputContent, []api.CallWarning, error) {
	var out []InputContent
	var warnings []api.CallWarning

	for _, p := range parts {
		switch part := p.(type) {
		case api.TextPart:
			out = append(out, InputContent{Type: "input_text", Text: part.Text})

		case api.FilePart:
			kind, mediaType := provider.ClassifyMedia(part.MediaType)
			if kind == provider.MediaVideo {
				warnings = append(warnings, api.CallWarning{
					Type:    api.WarningUnsupportedFeature,
					Details: part.MediaType,
					Message: "video input is not supported by the responses protocol",
				})
				continue
			}
			if kind == provider.MediaUnsupported {
				return nil, nil, api.NewUnsupportedContentError(part.MediaType)
			}

			url, err := api.FileDataURL(part.Data, mediaType)
			if err != nil {
				return nil, nil, err
			}
			if kind == provider.MediaImage {
				out = append(out, InputContent{Type: "input_image", ImageURL: url})
				continue
			}
			if api.IsURL(part.Data) {
				out = append(out, InputContent{Type: "input_file", FileURL: url})
				continue
			}
			out = append(out, InputContent{
				Type:     "input_file",
				FileData: url,
				Filename: provider.PDFFilename(part.Filename),
			})

		default:
			return nil, nil, api.NewInvalidArgumentError("content", fmt.Sprintf("unsupported user part %T", p))
		}
	}
	return out, warnings, nil
}

// convertAssistant keeps the part order. Consecutive text parts share one
// message item.
func convertAssistant(m api.AssistantMessage) ([]InputItem, error) {
	var items []InputItem
	var text *MessageItem

	flushText := func() {
		if text != nil {
			items = append(items, *text)
			text = nil
		}
	}

	for _, p := range m.Parts {
		switch part := p.(type) {
		case api.TextPart:
			if text == nil {
				text = &MessageItem{Type: "message", Role: "assistant"}
			}
			text.Content = append(text.Content, InputContent{Type: "output_text", Text: part.Text})
		case api.ReasoningPart:
			flushText()
			items = append(items, ReasoningItem{
				Type:    "reasoning",
				Summary: []SummaryText{{Type: "summary_text", Text: part.Text}},
			})
		case api.ToolCallPart:
			flushText()
			args, err := part.InputString()
			if err != nil {
				return nil, api.NewInvalidArgumentError("input", err.Error())
			}
			items = append(items, FunctionCallItem{
				Type:      "function_call",
				CallID:    part.ToolCallID,
				Name:      part.ToolName,
				Arguments: args,
			})
		default:
			return nil, api.NewInvalidArgumentError("content", fmt.Sprintf("unsupported assistant part %T", p))
		}
	}
	flushText()
	return items, nil
}
