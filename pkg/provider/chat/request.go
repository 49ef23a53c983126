package chat

import (
	"fmt"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
	"github.com/SweetRetry/seedkit-ai/pkg/provider"
)

// BuildRequest translates call options into a chat-completions request and
// the warnings for every option that was dropped.
func BuildRequest(opts *provider.CallOptions, stream bool) (*Request, []api.CallWarning, error) {
	if opts.Model == "" {
		return nil, nil, api.NewInvalidArgumentError("model", "model is required")
	}
	if err := api.ValidatePrompt(opts.Messages, api.DefaultValidationConfig()); err != nil {
		return nil, nil, err
	}

	warnings := provider.UnsupportedSettingWarnings(provider.ChatCapabilities, opts)

	msgs, err := ConvertMessages(opts.Messages)
	if err != nil {
		return nil, nil, err
	}

	tools, toolChoice, toolWarnings, err := ConvertTools(opts.Tools, opts.ToolChoice)
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, toolWarnings...)

	po := opts.Options()
	req := &Request{
		Model:             opts.Model,
		Messages:          msgs,
		Temperature:       opts.Temperature,
		TopP:              opts.TopP,
		Seed:              opts.Seed,
		Tools:             tools,
		ToolChoice:        toolChoice,
		ParallelToolCalls: po.ParallelToolCalls,
		ReasoningEffort:   po.ReasoningEffort,
		User:              po.User,
	}

	// max_completion_tokens counts reasoning tokens too and wins over
	// max_tokens when both are given.
	if po.MaxCompletionTokens != nil {
		req.MaxCompletionTokens = po.MaxCompletionTokens
	} else {
		req.MaxTokens = opts.MaxOutputTokens
	}

	if mode := opts.Thinking(); mode != "" {
		req.Thinking = &Thinking{Type: string(mode)}
	}

	if opts.ResponseFormat != nil {
		rf, err := convertResponseFormat(opts.ResponseFormat)
		if err != nil {
			return nil, nil, err
		}
		req.ResponseFormat = rf
	}

	if po.Store != nil {
		warnings = append(warnings, api.CallWarning{
			Type:    api.WarningUnsupportedSetting,
			Setting: "store",
			Message: "store is only supported by the responses protocol",
		})
	}
	if po.PreviousResponseID != "" {
		warnings = append(warnings, api.CallWarning{
			Type:    api.WarningUnsupportedSetting,
			Setting: "previousResponseId",
			Message: "previousResponseId is only supported by the responses protocol",
		})
	}

	if stream {
		req.Stream = true
		req.StreamOptions = &StreamOptions{IncludeUsage: true}
	}
	return req, warnings, nil
}

func convertResponseFormat(rf *provider.ResponseFormat) (*ResponseFormat, error) {
	switch rf.Type {
	case provider.ResponseFormatText, "":
		return nil, nil
	case provider.ResponseFormatJSONObject:
		return &ResponseFormat{Type: "json_object"}, nil
	case provider.ResponseFormatJSONSchema:
		if len(rf.Schema) == 0 {
			return &ResponseFormat{Type: "json_object"}, nil
		}
		name := rf.Name
		if name == "" {
			name = "response"
		}
		return &ResponseFormat{
			Type: "json_schema",
			JSONSchema: &JSONSchema{
				Name:        name,
				Description: rf.Description,
				Schema:      rf.Schema,
				Strict:      rf.Strict,
			},
		}, nil
	default:
		return nil, api.NewInvalidArgumentError("response_format", fmt.Sprintf("unknown response format %q", rf.Type))
	}
}
