package provider

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
)

func newHTTPResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestMapHTTPError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantCode    string
		wantParam   string
		wantRetry   bool
	}{
		{
			name:        "openai style body",
			status:      400,
			body:        `{"error":{"message":"The parameter model is invalid","type":"BadRequest","param":"model","code":"InvalidParameter"}}`,
			wantMessage: "The parameter model is invalid",
			wantCode:    "InvalidParameter",
			wantParam:   "model",
		},
		{
			name:        "gateway style body",
			status:      429,
			body:        `{"ResponseMetadata":{"RequestId":"x","Error":{"Code":"RateLimitExceeded","Message":"too many requests"}}}`,
			wantMessage: "too many requests",
			wantCode:    "RateLimitExceeded",
			wantRetry:   true,
		},
		{
			name:        "plain text 401",
			status:      401,
			body:        "unauthorized",
			wantMessage: "authentication with Ark failed",
		},
		{
			name:        "empty 503",
			status:      503,
			wantMessage: "Ark server error (HTTP 503)",
			wantRetry:   true,
		},
		{
			name:        "error object without message",
			status:      404,
			body:        `{"error":{"code":"NotFound"}}`,
			wantMessage: "unexpected Ark response (HTTP 404)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapHTTPError(newHTTPResponse(tt.status, tt.body))
			if err.Type != api.ErrorTypeFailedRequest {
				t.Errorf("Type = %q, want failed_request", err.Type)
			}
			if err.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", err.StatusCode, tt.status)
			}
			if err.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMessage)
			}
			if err.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", err.Code, tt.wantCode)
			}
			if err.Param != tt.wantParam {
				t.Errorf("Param = %q, want %q", err.Param, tt.wantParam)
			}
			if err.Body != tt.body {
				t.Errorf("Body = %q, want %q", err.Body, tt.body)
			}
			if got := err.IsRetryable(); got != tt.wantRetry {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.wantRetry)
			}
		})
	}
}

func TestBodyError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"no error", `{"id":"x","choices":[]}`, ""},
		{"null error", `{"id":"x","error":null}`, ""},
		{"error", `{"error":{"message":"quota exceeded"}}`, "quota exceeded"},
		{"invalid json", `{"error":`, ""},
		{"empty", ``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := BodyError([]byte(tt.body))
			switch {
			case tt.want == "" && err != nil:
				t.Errorf("BodyError() = %v, want nil", err)
			case tt.want != "" && err == nil:
				t.Errorf("BodyError() = nil, want %q", tt.want)
			case tt.want != "" && err.Message != tt.want:
				t.Errorf("Message = %q, want %q", err.Message, tt.want)
			}
		})
	}
}

func TestMapNetworkError(t *testing.T) {
	err := MapNetworkError(context.DeadlineExceeded)
	if !errors.Is(err, api.ErrFailedRequest) {
		t.Error("network error should be a failed request")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("network error should unwrap to its cause")
	}
	if ErrorLabel(err) != "timeout" {
		t.Errorf("ErrorLabel = %q, want timeout", ErrorLabel(err))
	}
}
