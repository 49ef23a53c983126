package provider

import (
	"encoding/json"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
)

// UsageCounts is a vendor usage record reduced to the four counters Ark
// reports. A nil field was absent from the payload.
type UsageCounts struct {
	Input           *int
	CacheRead       *int
	Output          *int
	OutputReasoning *int
}

// NormalizeUsage derives the normalized usage from vendor counters. A nil
// counts means no usage was reported: every field stays nil and raw is
// dropped.
func NormalizeUsage(counts *UsageCounts, raw json.RawMessage) api.Usage {
	if counts == nil {
		return api.Usage{}
	}

	u := api.Usage{
		InputTotal:      counts.Input,
		InputNoCache:    counts.Input,
		InputCacheRead:  counts.CacheRead,
		OutputTotal:     counts.Output,
		OutputText:      counts.Output,
		OutputReasoning: counts.OutputReasoning,
	}
	if counts.Input != nil && counts.CacheRead != nil {
		u.InputNoCache = intPtr(*counts.Input - *counts.CacheRead)
	}
	if counts.Output != nil && counts.OutputReasoning != nil {
		u.OutputText = intPtr(*counts.Output - *counts.OutputReasoning)
	}
	if len(raw) > 0 {
		u.Raw = append(json.RawMessage(nil), raw...)
	}
	return u
}

func intPtr(v int) *int { return &v }
