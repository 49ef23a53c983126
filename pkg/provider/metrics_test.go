package provider

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
	"github.com/SweetRetry/seedkit-ai/pkg/observability"
)

func TestErrorLabel(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "ok"},
		{"canceled", fmt.Errorf("stream: %w", context.Canceled), "canceled"},
		{"deadline", context.DeadlineExceeded, "timeout"},
		{"api error", fmt.Errorf("chat: %w", api.NewNoContentError()), "no_content"},
		{"malformed chunk", api.NewMalformedChunkError(errors.New("x")), "malformed_chunk"},
		{"other", errors.New("boom"), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorLabel(tt.err); got != tt.want {
				t.Errorf("ErrorLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecordCall(t *testing.T) {
	const model = "record-call-test-model"
	in, out := 7, 3
	RecordCall(ProtocolChat, model, time.Now(), &api.Usage{InputTotal: &in, OutputTotal: &out}, nil)
	RecordCall(ProtocolChat, model, time.Now(), nil, api.NewNoChoicesError())

	if got := testutil.ToFloat64(observability.ProviderRequestsTotal.WithLabelValues("chat", model, "ok")); got != 1 {
		t.Errorf("ok requests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(observability.ProviderRequestsTotal.WithLabelValues("chat", model, "no_choices")); got != 1 {
		t.Errorf("no_choices requests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(observability.ProviderTokensTotal.WithLabelValues("chat", model, "input")); got != 7 {
		t.Errorf("input tokens = %v, want 7", got)
	}
	if got := testutil.ToFloat64(observability.ProviderTokensTotal.WithLabelValues("chat", model, "output")); got != 3 {
		t.Errorf("output tokens = %v, want 3", got)
	}
}
