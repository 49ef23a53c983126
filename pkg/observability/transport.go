package observability

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// InstrumentTransport wraps an HTTP round tripper to record outbound request
// metrics. A nil next uses http.DefaultTransport.
//
// It captures:
//   - seedkit_http_requests_total (counter): per request with method, endpoint and status class labels
//   - seedkit_http_request_duration_seconds (histogram): time until response headers
//   - seedkit_streaming_connections_active (gauge): incremented while an SSE response body is open
func InstrumentTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &instrumentedTransport{next: next}
}

type instrumentedTransport struct {
	next http.RoundTripper
}

func (t *instrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	path := endpointLabel(req.URL.Path)

	resp, err := t.next.RoundTrip(req)

	HTTPRequestDuration.WithLabelValues(req.Method, path).Observe(time.Since(start).Seconds())

	if err != nil {
		HTTPRequestsTotal.WithLabelValues(req.Method, path, "error").Inc()
		return nil, err
	}

	// Build a status class label like "2xx", "4xx", "5xx".
	HTTPRequestsTotal.WithLabelValues(req.Method, path, strconv.Itoa(resp.StatusCode/100)+"xx").Inc()

	if isEventStream(req, resp) {
		StreamingConnections.Inc()
		resp.Body = &gaugeBody{ReadCloser: resp.Body}
	}
	return resp, nil
}

// gaugeBody decrements the streaming gauge once when the body is closed.
type gaugeBody struct {
	io.ReadCloser
	once sync.Once
}

func (b *gaugeBody) Close() error {
	b.once.Do(StreamingConnections.Dec)
	return b.ReadCloser.Close()
}

func isEventStream(req *http.Request, resp *http.Response) bool {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false
	}
	return req.Header.Get("Accept") == "text/event-stream" ||
		strings.HasPrefix(resp.Header.Get("Content-Type"), "text/event-stream")
}

// endpointLabel maps a request path to a bounded label value.
func endpointLabel(path string) string {
	switch {
	case strings.HasSuffix(path, "/chat/completions"):
		return "chat/completions"
	case strings.HasSuffix(path, "/responses"):
		return "responses"
	default:
		return "other"
	}
}
