package api

import (
	"fmt"
	"net/http"
)

// ErrorType represents the category of an API error.
type ErrorType string

const (
	ErrorTypeNoChoices          ErrorType = "no_choices"
	ErrorTypeNoContent          ErrorType = "no_content"
	ErrorTypeUnsupportedContent ErrorType = "unsupported_content"
	ErrorTypeUnsupportedFeature ErrorType = "unsupported_feature"
	ErrorTypeMalformedChunk     ErrorType = "malformed_chunk"
	ErrorTypeFailedRequest      ErrorType = "failed_request"
	ErrorTypeInvalidArgument    ErrorType = "invalid_argument"
	ErrorTypeServerError        ErrorType = "server_error"
)

// Sentinels for errors.Is. Matching compares the error type only.
var (
	ErrNoChoices          = &APIError{Type: ErrorTypeNoChoices}
	ErrNoContent          = &APIError{Type: ErrorTypeNoContent}
	ErrUnsupportedContent = &APIError{Type: ErrorTypeUnsupportedContent}
	ErrUnsupportedFeature = &APIError{Type: ErrorTypeUnsupportedFeature}
	ErrMalformedChunk     = &APIError{Type: ErrorTypeMalformedChunk}
	ErrFailedRequest      = &APIError{Type: ErrorTypeFailedRequest}
	ErrInvalidArgument    = &APIError{Type: ErrorTypeInvalidArgument}
)

// APIError represents a structured error with type, code, param, and message.
type APIError struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code,omitempty"`
	Param   string    `json:"param,omitempty"`
	Message string    `json:"message"`

	// StatusCode is the HTTP status of a failed request, 0 otherwise.
	StatusCode int `json:"-"`
	// Body is the raw vendor response body of a failed request.
	Body string `json:"-"`
	// Cause is the underlying error, if any.
	Cause error `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: %s (param: %s)", e.Type, e.Message, e.Param)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *APIError of the same type.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// IsRetryable reports whether a failed request may succeed when sent again.
// Retrying is the caller's decision; the adapter never retries.
func (e *APIError) IsRetryable() bool {
	if e.Type != ErrorTypeFailedRequest {
		return false
	}
	switch e.StatusCode {
	case http.StatusRequestTimeout, http.StatusConflict, http.StatusTooManyRequests:
		return true
	}
	return e.StatusCode >= http.StatusInternalServerError
}

// ErrorResponse is the vendor error wire shape {"error": {...}}.
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// NewNoChoicesError creates an APIError for a response without choices.
func NewNoChoicesError() *APIError {
	return &APIError{
		Type:    ErrorTypeNoChoices,
		Message: "response contained no choices",
	}
}

// NewNoContentError creates an APIError for a response without usable content.
func NewNoContentError() *APIError {
	return &APIError{
		Type:    ErrorTypeNoContent,
		Message: "response contained no content",
	}
}

// NewUnsupportedContentError creates an APIError for content that has no
// wire representation.
func NewUnsupportedContentError(mediaType string) *APIError {
	return &APIError{
		Type:    ErrorTypeUnsupportedContent,
		Param:   "media_type",
		Message: fmt.Sprintf("file part with media type %q is not supported", mediaType),
	}
}

// NewUnsupportedFeatureError creates an APIError for a feature the protocol lacks.
func NewUnsupportedFeatureError(feature string) *APIError {
	return &APIError{
		Type:    ErrorTypeUnsupportedFeature,
		Message: fmt.Sprintf("%s is not supported", feature),
	}
}

// NewMalformedChunkError creates an APIError for a stream chunk that failed
// to parse.
func NewMalformedChunkError(cause error) *APIError {
	return &APIError{
		Type:    ErrorTypeMalformedChunk,
		Message: fmt.Sprintf("malformed stream chunk: %s", cause.Error()),
		Cause:   cause,
	}
}

// NewFailedRequestError creates an APIError for a non-2xx vendor response or
// an error reported inside a response body.
func NewFailedRequestError(statusCode int, message string) *APIError {
	return &APIError{
		Type:       ErrorTypeFailedRequest,
		Message:    message,
		StatusCode: statusCode,
	}
}

// NewInvalidArgumentError creates an APIError for invalid caller input.
func NewInvalidArgumentError(param, message string) *APIError {
	return &APIError{
		Type:    ErrorTypeInvalidArgument,
		Param:   param,
		Message: message,
	}
}

// NewServerError creates an APIError for local failures such as encoding errors.
func NewServerError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeServerError,
		Message: message,
	}
}
