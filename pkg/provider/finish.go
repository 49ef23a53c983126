package provider

import "github.com/SweetRetry/seedkit-ai/pkg/api"

// MapChatFinishReason converts a chat-completions finish_reason. Unknown
// and empty values map to other.
func MapChatFinishReason(reason string) api.FinishReason {
	fr := api.FinishReason{Raw: reason}
	switch reason {
	case "stop":
		fr.Unified = api.FinishReasonStop
	case "length":
		fr.Unified = api.FinishReasonLength
	case "content_filter":
		fr.Unified = api.FinishReasonContentFilter
	case "tool_calls", "function_call":
		fr.Unified = api.FinishReasonToolCalls
	default:
		fr.Unified = api.FinishReasonOther
	}
	return fr
}

// MapResponsesFinishReason converts a responses incomplete_details.reason.
// An empty reason means the response completed normally.
func MapResponsesFinishReason(incompleteReason string, hasToolCalls bool) api.FinishReason {
	fr := api.FinishReason{Raw: incompleteReason}
	switch incompleteReason {
	case "":
		if hasToolCalls {
			fr.Unified = api.FinishReasonToolCalls
		} else {
			fr.Unified = api.FinishReasonStop
		}
	case "max_output_tokens", "length":
		fr.Unified = api.FinishReasonLength
	case "content_filter":
		fr.Unified = api.FinishReasonContentFilter
	default:
		if hasToolCalls {
			fr.Unified = api.FinishReasonToolCalls
		} else {
			fr.Unified = api.FinishReasonOther
		}
	}
	return fr
}
