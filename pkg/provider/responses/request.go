package responses

import (
	"fmt"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
	"github.com/SweetRetry/seedkit-ai/pkg/provider"
)

// BuildRequest translates call options into a responses request and the
// warnings for every option that was dropped.
func BuildRequest(opts *provider.CallOptions, stream bool) (*Request, []api.CallWarning, error) {
	if opts.Model == "" {
		return nil, nil, api.NewInvalidArgumentError("model", "model is required")
	}
	if err := api.ValidatePrompt(opts.Messages, api.DefaultValidationConfig()); err != nil {
		return nil, nil, err
	}

	warnings := provider.UnsupportedSettingWarnings(provider.ResponsesCapabilities, opts)

	input, instructions, msgWarnings, err := ConvertMessages(opts.Messages)
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, msgWarnings...)

	tools, toolChoice, toolWarnings, err := ConvertTools(opts.Tools, opts.ToolChoice)
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, toolWarnings...)

	po := opts.Options()
	req := &Request{
		Model:              opts.Model,
		Input:              input,
		Instructions:       instructions,
		MaxOutputTokens:    opts.MaxOutputTokens,
		Temperature:        opts.Temperature,
		TopP:               opts.TopP,
		Tools:              tools,
		ToolChoice:         toolChoice,
		ParallelToolCalls:  po.ParallelToolCalls,
		Store:              po.Store,
		PreviousResponseID: po.PreviousResponseID,
		Stream:             stream,
	}

	if mode := opts.Thinking(); mode != "" {
		req.Thinking = &Thinking{Type: string(mode)}
	}
	if po.ReasoningEffort != "" {
		req.Reasoning = &Reasoning{Effort: po.ReasoningEffort}
	}

	if opts.ResponseFormat != nil {
		text, err := convertResponseFormat(opts.ResponseFormat)
		if err != nil {
			return nil, nil, err
		}
		req.Text = text
	}

	if po.MaxCompletionTokens != nil {
		warnings = append(warnings, api.CallWarning{
			Type:    api.WarningUnsupportedSetting,
			Setting: "maxCompletionTokens",
			Message: "use maxOutputTokens with the responses protocol",
		})
	}
	if po.User != "" {
		warnings = append(warnings, api.CallWarning{
			Type:    api.WarningUnsupportedSetting,
			Setting: "user",
		})
	}
	return req, warnings, nil
}

func convertResponseFormat(rf *provider.ResponseFormat) (*TextConfig, error) {
	switch rf.Type {
	case provider.ResponseFormatText, "":
		return nil, nil
	case provider.ResponseFormatJSONObject:
		return &TextConfig{Format: TextFormat{Type: "json_object"}}, nil
	case provider.ResponseFormatJSONSchema:
		if len(rf.Schema) == 0 {
			return &TextConfig{Format: TextFormat{Type: "json_object"}}, nil
		}
		name := rf.Name
		if name == "" {
			name = "response"
		}
		return &TextConfig{Format: TextFormat{
			Type:        "json_schema",
			Name:        name,
			Description: rf.Description,
			Schema:      rf.Schema,
			Strict:      rf.Strict,
		}}, nil
	default:
		return nil, api.NewInvalidArgumentError("response_format", fmt.Sprintf("unknown response format %q", rf.Type))
	}
}
