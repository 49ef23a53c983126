package chat

import (
	"encoding/json"
	"time"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
	"github.com/SweetRetry/seedkit-ai/pkg/provider"
)

// ParseResponse converts a complete chat-completions body into a
// GenerateResult. Only choices[0] is used.
func ParseResponse(body []byte) (*api.GenerateResult, error) {
	if apiErr := provider.BodyError(body); apiErr != nil {
		return nil, apiErr
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, api.NewServerError("failed to parse Ark chat response: " + err.Error())
	}
	if len(resp.Choices) == 0 {
		return nil, api.NewNoChoicesError()
	}

	choice := resp.Choices[0]
	msg := choice.Message

	var content []api.ContentBlock
	if msg.ReasoningContent != nil && *msg.ReasoningContent != "" {
		content = append(content, api.ReasoningBlock{Text: *msg.ReasoningContent})
	}
	if msg.Content != nil && *msg.Content != "" {
		content = append(content, api.TextBlock{Text: *msg.Content})
	}
	for _, tc := range msg.ToolCalls {
		id := tc.ID
		if id == "" {
			id = api.NewToolCallID()
		}
		args := tc.Function.Arguments
		if args == "" {
			args = "{}"
		}
		content = append(content, api.ToolCallBlock{
			ToolCallID: id,
			ToolName:   tc.Function.Name,
			Input:      args,
		})
	}
	if len(content) == 0 {
		return nil, api.NewNoContentError()
	}

	usage, _, err := parseUsage(resp.Usage)
	if err != nil {
		return nil, api.NewServerError("failed to parse Ark chat usage: " + err.Error())
	}

	result := &api.GenerateResult{
		Content:      content,
		FinishReason: provider.MapChatFinishReason(choice.FinishReason),
		Usage:        usage,
		Response: api.ResponseMetadata{
			ID:      resp.ID,
			ModelID: resp.Model,
		},
		RawBody: append(json.RawMessage(nil), body...),
	}
	if resp.Created > 0 {
		result.Response.Timestamp = time.Unix(resp.Created, 0).UTC()
	}
	return result, nil
}
