package provider

import (
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// MapHTTPError converts an HTTP response with a non-2xx status code into a
// failed_request APIError. The vendor message, code and param are taken
// from the {"error": {...}} body when present.
func MapHTTPError(resp *http.Response) *api.APIError {
	var body []byte
	if resp.Body != nil {
		body, _ = io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	}

	apiErr := BodyError(body)
	if apiErr == nil {
		apiErr = &api.APIError{Type: api.ErrorTypeFailedRequest}
	}
	apiErr.StatusCode = resp.StatusCode
	apiErr.Body = string(body)

	if apiErr.Message == "" {
		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			apiErr.Message = "authentication with Ark failed"
		case resp.StatusCode == http.StatusTooManyRequests:
			apiErr.Message = "Ark rate limit exceeded"
		case resp.StatusCode >= http.StatusInternalServerError:
			apiErr.Message = fmt.Sprintf("Ark server error (HTTP %d)", resp.StatusCode)
		default:
			apiErr.Message = fmt.Sprintf("unexpected Ark response (HTTP %d)", resp.StatusCode)
		}
	}
	return apiErr
}

// BodyError extracts a vendor error object from a JSON body. It returns nil
// when the body carries no error message. Both the OpenAI style
// {"error": {...}} and the Volcengine gateway style
// {"ResponseMetadata": {"Error": {...}}} are recognized.
func BodyError(body []byte) *api.APIError {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return nil
	}

	if e := gjson.GetBytes(body, "error"); e.IsObject() {
		msg := e.Get("message").String()
		if msg == "" {
			return nil
		}
		return &api.APIError{
			Type:    api.ErrorTypeFailedRequest,
			Code:    e.Get("code").String(),
			Param:   e.Get("param").String(),
			Message: msg,
		}
	}

	if e := gjson.GetBytes(body, "ResponseMetadata.Error"); e.IsObject() {
		msg := e.Get("Message").String()
		if msg == "" {
			return nil
		}
		return &api.APIError{
			Type:    api.ErrorTypeFailedRequest,
			Code:    e.Get("Code").String(),
			Message: msg,
		}
	}
	return nil
}

// MapNetworkError converts a transport-level error (connection refused,
// timeout, DNS failure, cancellation) into a failed_request APIError that
// unwraps to the original error.
func MapNetworkError(err error) *api.APIError {
	return &api.APIError{
		Type:    api.ErrorTypeFailedRequest,
		Message: fmt.Sprintf("Ark connection error: %s", err.Error()),
		Cause:   err,
	}
}
