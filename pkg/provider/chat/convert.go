package chat

import (
	"fmt"
	"strings"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
	"github.com/SweetRetry/seedkit-ai/pkg/provider"
)

// ConvertMessages translates a prompt into the chat-completions messages
// array. Message order is preserved. A tool message becomes one "tool"
// message per result.
func ConvertMessages(prompt []api.Message) ([]Message, error) {
	var msgs []Message
	for _, msg := range prompt {
		switch m := msg.(type) {
		case api.SystemMessage:
			msgs = append(msgs, Message{Role: "system", Content: m.Text})

		case api.UserMessage:
			content, err := convertUserContent(m.Parts)
			if err != nil {
				return nil, err
			}
			msgs = append(msgs, Message{Role: "user", Content: content})

		case api.AssistantMessage:
			am, err := convertAssistant(m)
			if err != nil {
				return nil, err
			}
			msgs = append(msgs, am)

		case api.ToolMessage:
			for _, r := range m.Results {
				out, err := api.ToolResultString(r.Output)
				if err != nil {
					return nil, err
				}
				msgs = append(msgs, Message{
					Role:       "tool",
					Content:    out,
					ToolCallID: r.ToolCallID,
				})
			}

		default:
			return nil, api.NewInvalidArgumentError("prompt", fmt.Sprintf("unsupported message type %T", msg))
		}
	}
	return msgs, nil
}

// convertUserContent returns a plain string for a single text part and a
// part list otherwise.
func convertUserContent(parts []api.UserPart) (any, error) {
	if len(parts) == 1 {
		if t, ok := parts[0].(api.TextPart); ok {
			return t.Text, nil
		}
	}

	out := make([]ContentPart, 0, len(parts))
	for _, p := range parts {
		switch part := p.(type) {
		case api.TextPart:
			out = append(out, ContentPart{Type: "text", Text: part.Text})
		case api.FilePart:
			cp, err := convertFilePart(part)
			if err != nil {
				return nil, err
			}
			out = append(out, cp)
		default:
			return nil, api.NewInvalidArgumentError("content", fmt.Sprintf("unsupported user part %T", p))
		}
	}
	return out, nil
}

func convertFilePart(part api.FilePart) (ContentPart, error) {
	kind, mediaType := provider.ClassifyMedia(part.MediaType)
	if kind == provider.MediaUnsupported {
		return ContentPart{}, api.NewUnsupportedContentError(part.MediaType)
	}

	url, err := api.FileDataURL(part.Data, mediaType)
	if err != nil {
		return ContentPart{}, err
	}

	switch kind {
	case provider.MediaImage:
		return ContentPart{Type: "image_url", ImageURL: &MediaURL{URL: url}}, nil
	case provider.MediaVideo:
		return ContentPart{Type: "video_url", VideoURL: &MediaURL{URL: url}}, nil
	case provider.MediaPDF:
		if api.IsURL(part.Data) {
			return ContentPart{Type: "file", File: &File{FileURL: url}}, nil
		}
		return ContentPart{Type: "file", File: &File{
			FileData: url,
			Filename: provider.PDFFilename(part.Filename),
		}}, nil
	default:
		return ContentPart{}, api.NewUnsupportedContentError(part.MediaType)
	}
}

// convertAssistant concatenates text and reasoning parts and collects tool
// calls. Content is sent as "" when the message only holds tool calls.
func convertAssistant(m api.AssistantMessage) (Message, error) {
	var text, reasoning strings.Builder
	var calls []ToolCall

	for _, p := range m.Parts {
		switch part := p.(type) {
		case api.TextPart:
			text.WriteString(part.Text)
		case api.ReasoningPart:
			reasoning.WriteString(part.Text)
		case api.ToolCallPart:
			args, err := part.InputString()
			if err != nil {
				return Message{}, api.NewInvalidArgumentError("input", err.Error())
			}
			calls = append(calls, ToolCall{
				ID:   part.ToolCallID,
				Type: "function",
				Function: ToolCallFunction{
					Name:      part.ToolName,
					Arguments: args,
				},
			})
		default:
			return Message{}, api.NewInvalidArgumentError("content", fmt.Sprintf("unsupported assistant part %T", p))
		}
	}

	return Message{
		Role:             "assistant",
		Content:          text.String(),
		ReasoningContent: reasoning.String(),
		ToolCalls:        calls,
	}, nil
}
