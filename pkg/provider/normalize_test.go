package provider

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
)

func TestNormalizeUsage(t *testing.T) {
	tests := []struct {
		name   string
		counts *UsageCounts
		want   api.Usage
	}{
		{
			name:   "all counters",
			counts: &UsageCounts{Input: ptr(100), CacheRead: ptr(30), Output: ptr(50), OutputReasoning: ptr(20)},
			want: api.Usage{
				InputTotal: ptr(100), InputNoCache: ptr(70), InputCacheRead: ptr(30),
				OutputTotal: ptr(50), OutputText: ptr(30), OutputReasoning: ptr(20),
			},
		},
		{
			name:   "totals only",
			counts: &UsageCounts{Input: ptr(4), Output: ptr(2)},
			want: api.Usage{
				InputTotal: ptr(4), InputNoCache: ptr(4),
				OutputTotal: ptr(2), OutputText: ptr(2),
			},
		},
		{
			name:   "cache without total",
			counts: &UsageCounts{CacheRead: ptr(3)},
			want:   api.Usage{InputCacheRead: ptr(3)},
		},
		{
			name:   "zero cache",
			counts: &UsageCounts{Input: ptr(10), CacheRead: ptr(0), Output: ptr(0), OutputReasoning: ptr(0)},
			want: api.Usage{
				InputTotal: ptr(10), InputNoCache: ptr(10), InputCacheRead: ptr(0),
				OutputTotal: ptr(0), OutputText: ptr(0), OutputReasoning: ptr(0),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeUsage(tt.counts, nil)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("NormalizeUsage mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// The derived fields always add back up to the totals when both parts are known.
func TestNormalizeUsageInvariants(t *testing.T) {
	for input := 0; input <= 20; input += 5 {
		for cache := 0; cache <= input; cache += 3 {
			for output := 0; output <= 20; output += 4 {
				for reasoning := 0; reasoning <= output; reasoning += 3 {
					u := NormalizeUsage(&UsageCounts{
						Input: ptr(input), CacheRead: ptr(cache),
						Output: ptr(output), OutputReasoning: ptr(reasoning),
					}, nil)
					if *u.InputNoCache+*u.InputCacheRead != *u.InputTotal {
						t.Fatalf("input split %d+%d != %d", *u.InputNoCache, *u.InputCacheRead, *u.InputTotal)
					}
					if *u.OutputText+*u.OutputReasoning != *u.OutputTotal {
						t.Fatalf("output split %d+%d != %d", *u.OutputText, *u.OutputReasoning, *u.OutputTotal)
					}
					if u.InputCacheWrite != nil {
						t.Fatal("InputCacheWrite should never be set")
					}
				}
			}
		}
	}
}

func TestNormalizeUsageRaw(t *testing.T) {
	raw := json.RawMessage(`{"prompt_tokens":1}`)

	got := NormalizeUsage(&UsageCounts{Input: ptr(1)}, raw)
	if string(got.Raw) != string(raw) {
		t.Errorf("Raw = %s, want %s", got.Raw, raw)
	}

	// Absent usage attaches nothing, even when a raw payload is offered.
	if diff := cmp.Diff(api.Usage{}, NormalizeUsage(nil, raw)); diff != "" {
		t.Errorf("absent usage mismatch (-want +got):\n%s", diff)
	}
}

func TestMapChatFinishReason(t *testing.T) {
	tests := []struct {
		in   string
		want api.FinishReasonKind
	}{
		{"stop", api.FinishReasonStop},
		{"length", api.FinishReasonLength},
		{"content_filter", api.FinishReasonContentFilter},
		{"tool_calls", api.FinishReasonToolCalls},
		{"function_call", api.FinishReasonToolCalls},
		{"", api.FinishReasonOther},
		{"something_new", api.FinishReasonOther},
	}
	for _, tt := range tests {
		got := MapChatFinishReason(tt.in)
		if got.Unified != tt.want {
			t.Errorf("MapChatFinishReason(%q).Unified = %q, want %q", tt.in, got.Unified, tt.want)
		}
		if got.Raw != tt.in {
			t.Errorf("MapChatFinishReason(%q).Raw = %q, want the input", tt.in, got.Raw)
		}
	}
}

func TestMapResponsesFinishReason(t *testing.T) {
	tests := []struct {
		reason       string
		hasToolCalls bool
		want         api.FinishReasonKind
	}{
		{"", false, api.FinishReasonStop},
		{"", true, api.FinishReasonToolCalls},
		{"max_output_tokens", false, api.FinishReasonLength},
		{"max_output_tokens", true, api.FinishReasonLength},
		{"length", false, api.FinishReasonLength},
		{"content_filter", true, api.FinishReasonContentFilter},
		{"unknown_reason", false, api.FinishReasonOther},
		{"unknown_reason", true, api.FinishReasonToolCalls},
	}
	for _, tt := range tests {
		got := MapResponsesFinishReason(tt.reason, tt.hasToolCalls)
		if got.Unified != tt.want {
			t.Errorf("MapResponsesFinishReason(%q, %v) = %q, want %q", tt.reason, tt.hasToolCalls, got.Unified, tt.want)
		}
	}
}
