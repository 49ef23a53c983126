package api

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const toolCallIDPrefix = "call_"

var toolCallIDPattern = regexp.MustCompile(`^call_[a-f0-9]{32}$`)

// NewToolCallID generates a tool call ID for calls the vendor returned
// without one: "call_" followed by 32 hex characters of a random UUID.
func NewToolCallID() string {
	return toolCallIDPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ValidateToolCallID checks whether the given string has the shape produced
// by NewToolCallID.
func ValidateToolCallID(id string) bool {
	return toolCallIDPattern.MatchString(id)
}
