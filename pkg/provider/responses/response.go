package responses

import (
	"encoding/json"
	"time"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
	"github.com/SweetRetry/seedkit-ai/pkg/debug"
	"github.com/SweetRetry/seedkit-ai/pkg/provider"
)

// ParseResponse converts a complete responses body into a GenerateResult.
func ParseResponse(body []byte) (*api.GenerateResult, error) {
	if apiErr := provider.BodyError(body); apiErr != nil {
		return nil, apiErr
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, api.NewServerError("failed to parse Ark responses body: " + err.Error())
	}

	var content []api.ContentBlock
	hasToolCalls := false
	for _, item := range resp.Output {
		switch item.Type {
		case itemReasoning:
			for _, s := range item.Summary {
				content = append(content, api.ReasoningBlock{Text: s.Text})
			}
		case itemMessage:
			for _, c := range item.Content {
				switch c.Type {
				case "output_text":
					content = append(content, api.TextBlock{Text: c.Text})
				case "refusal":
					content = append(content, api.TextBlock{Text: c.Refusal})
				}
			}
		case itemFunctionCall:
			hasToolCalls = true
			content = append(content, api.ToolCallBlock{
				ToolCallID: toolCallID(item),
				ToolName:   item.Name,
				Input:      argumentsOrEmpty(item.Arguments),
			})
		default:
			debug.Log("providers", "skipping output item", "type", item.Type, "id", item.ID)
		}
	}
	if len(content) == 0 {
		return nil, api.NewNoContentError()
	}

	usage, _, err := parseUsage(resp.Usage)
	if err != nil {
		return nil, api.NewServerError("failed to parse Ark responses usage: " + err.Error())
	}

	result := &api.GenerateResult{
		Content:      content,
		FinishReason: provider.MapResponsesFinishReason(incompleteReason(resp), hasToolCalls),
		Usage:        usage,
		Response: api.ResponseMetadata{
			ID:      resp.ID,
			ModelID: resp.Model,
		},
		RawBody: append(json.RawMessage(nil), body...),
	}
	if resp.CreatedAt > 0 {
		result.Response.Timestamp = time.Unix(resp.CreatedAt, 0).UTC()
	}
	return result, nil
}

func incompleteReason(resp Response) string {
	if resp.IncompleteDetails == nil {
		return ""
	}
	return resp.IncompleteDetails.Reason
}

// toolCallID returns the call id of a function_call item, falling back to
// a generated id.
func toolCallID(item OutputItem) string {
	if item.CallID != "" {
		return item.CallID
	}
	return api.NewToolCallID()
}

func argumentsOrEmpty(args string) string {
	if args == "" {
		return "{}"
	}
	return args
}
