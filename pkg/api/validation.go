package api

import (
	"fmt"
	"strings"
)

// ValidationConfig holds configurable limits for prompt validation.
type ValidationConfig struct {
	MaxMessages    int
	MaxContentSize int
}

// DefaultValidationConfig returns a ValidationConfig with sensible defaults.
func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		MaxMessages:    1000,
		MaxContentSize: 20 * 1024 * 1024, // 20MB
	}
}

// ValidatePrompt checks a prompt for structural validity before conversion.
// It returns an *APIError describing the first failure, or nil.
func ValidatePrompt(prompt []Message, cfg ValidationConfig) *APIError {
	if len(prompt) == 0 {
		return NewInvalidArgumentError("prompt", "prompt must contain at least one message")
	}

	if cfg.MaxMessages > 0 && len(prompt) > cfg.MaxMessages {
		return NewInvalidArgumentError("prompt",
			fmt.Sprintf("prompt exceeds maximum of %d messages", cfg.MaxMessages))
	}

	size := 0
	for i, msg := range prompt {
		param := fmt.Sprintf("prompt[%d]", i)
		switch m := msg.(type) {
		case nil:
			return NewInvalidArgumentError(param, "message is nil")
		case SystemMessage:
			size += len(m.Text)
		case UserMessage:
			if len(m.Parts) == 0 {
				return NewInvalidArgumentError(param, "user message has no parts")
			}
			for _, p := range m.Parts {
				n, err := userPartSize(p, param)
				if err != nil {
					return err
				}
				size += n
			}
		case AssistantMessage:
			for _, p := range m.Parts {
				if tc, ok := p.(ToolCallPart); ok {
					if tc.ToolCallID == "" {
						return NewInvalidArgumentError(param, "tool call has no id")
					}
					if tc.ToolName == "" {
						return NewInvalidArgumentError(param, fmt.Sprintf("tool call %q has no name", tc.ToolCallID))
					}
				}
			}
		case ToolMessage:
			for _, r := range m.Results {
				if r.ToolCallID == "" {
					return NewInvalidArgumentError(param, "tool result has no tool call id")
				}
				if r.Output == nil {
					return NewInvalidArgumentError(param, fmt.Sprintf("tool result %q has no output", r.ToolCallID))
				}
			}
		default:
			return NewInvalidArgumentError(param, fmt.Sprintf("unsupported message %T", msg))
		}
	}

	if cfg.MaxContentSize > 0 && size > cfg.MaxContentSize {
		return NewInvalidArgumentError("prompt",
			fmt.Sprintf("prompt content exceeds maximum of %d bytes", cfg.MaxContentSize))
	}
	return nil
}

func userPartSize(p UserPart, param string) (int, *APIError) {
	switch part := p.(type) {
	case TextPart:
		return len(part.Text), nil
	case FilePart:
		if part.MediaType == "" || !strings.Contains(part.MediaType, "/") {
			return 0, NewInvalidArgumentError(param, fmt.Sprintf("invalid media type %q", part.MediaType))
		}
		switch d := part.Data.(type) {
		case URLData:
			return 0, nil
		case Base64Data:
			return len(d.Data), nil
		case BytesData:
			return len(d.Data), nil
		default:
			return 0, NewInvalidArgumentError(param, "file part has no data")
		}
	default:
		return 0, NewInvalidArgumentError(param, fmt.Sprintf("unsupported user part %T", p))
	}
}

// MediaCategory returns the top-level type of a media type ("image" for
// "image/png"), or the whole string when it has no subtype.
func MediaCategory(mediaType string) string {
	top, _, _ := strings.Cut(mediaType, "/")
	return top
}
