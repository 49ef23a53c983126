package provider

import (
	"context"
	"errors"
	"time"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
	"github.com/SweetRetry/seedkit-ai/pkg/observability"
)

// ErrorLabel returns a bounded metrics label for err.
func ErrorLabel(err error) string {
	var apiErr *api.APIError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &apiErr):
		return string(apiErr.Type)
	default:
		return "unknown"
	}
}

// RecordCall records the outcome, latency and token usage of one provider call.
func RecordCall(protocol Protocol, model string, started time.Time, usage *api.Usage, err error) {
	p := string(protocol)
	observability.ProviderRequestsTotal.WithLabelValues(p, model, ErrorLabel(err)).Inc()
	observability.ProviderLatency.WithLabelValues(p, model).Observe(time.Since(started).Seconds())

	if usage == nil {
		return
	}
	for direction, v := range map[string]*int{
		"input":      usage.InputTotal,
		"output":     usage.OutputTotal,
		"cache_read": usage.InputCacheRead,
		"reasoning":  usage.OutputReasoning,
	} {
		if v != nil && *v > 0 {
			observability.ProviderTokensTotal.WithLabelValues(p, model, direction).Add(float64(*v))
		}
	}
}

func recordEvent(protocol Protocol, ev api.StreamEvent) {
	observability.StreamEventsTotal.WithLabelValues(string(protocol), string(ev.Type())).Inc()
	if e, ok := ev.(api.Error); ok {
		observability.StreamErrorsTotal.WithLabelValues(string(protocol), ErrorLabel(e.Err)).Inc()
	}
}
