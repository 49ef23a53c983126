package api

import (
	"strings"
	"testing"
)

func TestValidatePrompt(t *testing.T) {
	cfg := DefaultValidationConfig()

	tests := []struct {
		name      string
		prompt    []Message
		cfg       ValidationConfig
		wantParam string
		wantMsg   string
	}{
		{
			name: "valid conversation",
			prompt: []Message{
				SystemMessage{Text: "be brief"},
				UserMessage{Parts: []UserPart{TextPart{Text: "hi"}, FilePart{Data: URLData{URL: "https://x/a.png"}, MediaType: "image/png"}}},
				AssistantMessage{Parts: []AssistantPart{ToolCallPart{ToolCallID: "c1", ToolName: "f"}}},
				ToolMessage{Results: []ToolResultPart{{ToolCallID: "c1", Output: TextOutput{Value: "ok"}}}},
			},
			cfg: cfg,
		},
		{
			name:      "empty prompt",
			cfg:       cfg,
			wantParam: "prompt",
			wantMsg:   "at least one message",
		},
		{
			name:      "too many messages",
			prompt:    []Message{SystemMessage{}, SystemMessage{}},
			cfg:       ValidationConfig{MaxMessages: 1},
			wantParam: "prompt",
			wantMsg:   "maximum of 1 messages",
		},
		{
			name:      "nil message",
			prompt:    []Message{nil},
			cfg:       cfg,
			wantParam: "prompt[0]",
			wantMsg:   "nil",
		},
		{
			name:      "user without parts",
			prompt:    []Message{UserMessage{}},
			cfg:       cfg,
			wantParam: "prompt[0]",
			wantMsg:   "no parts",
		},
		{
			name:      "file without media type",
			prompt:    []Message{UserMessage{Parts: []UserPart{FilePart{Data: URLData{URL: "x"}}}}},
			cfg:       cfg,
			wantParam: "prompt[0]",
			wantMsg:   "invalid media type",
		},
		{
			name:      "file without data",
			prompt:    []Message{UserMessage{Parts: []UserPart{FilePart{MediaType: "image/png"}}}},
			cfg:       cfg,
			wantParam: "prompt[0]",
			wantMsg:   "no data",
		},
		{
			name:      "tool call without id",
			prompt:    []Message{SystemMessage{}, AssistantMessage{Parts: []AssistantPart{ToolCallPart{ToolName: "f"}}}},
			cfg:       cfg,
			wantParam: "prompt[1]",
			wantMsg:   "no id",
		},
		{
			name:      "tool result without output",
			prompt:    []Message{ToolMessage{Results: []ToolResultPart{{ToolCallID: "c1"}}}},
			cfg:       cfg,
			wantParam: "prompt[0]",
			wantMsg:   "no output",
		},
		{
			name:      "content too large",
			prompt:    []Message{UserMessage{Parts: []UserPart{TextPart{Text: strings.Repeat("x", 11)}}}},
			cfg:       ValidationConfig{MaxContentSize: 10},
			wantParam: "prompt",
			wantMsg:   "maximum of 10 bytes",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrompt(tt.prompt, tt.cfg)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("ValidatePrompt() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidatePrompt() = nil, want error")
			}
			if err.Type != ErrorTypeInvalidArgument {
				t.Errorf("Type = %q, want %q", err.Type, ErrorTypeInvalidArgument)
			}
			if err.Param != tt.wantParam {
				t.Errorf("Param = %q, want %q", err.Param, tt.wantParam)
			}
			if !strings.Contains(err.Message, tt.wantMsg) {
				t.Errorf("Message = %q, want it to contain %q", err.Message, tt.wantMsg)
			}
		})
	}
}

func TestMediaCategory(t *testing.T) {
	tests := map[string]string{
		"image/png":       "image",
		"video/*":         "video",
		"application/pdf": "application",
		"text":            "text",
	}
	for in, want := range tests {
		if got := MediaCategory(in); got != want {
			t.Errorf("MediaCategory(%q) = %q, want %q", in, got, want)
		}
	}
}
