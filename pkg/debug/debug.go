// Package debug provides category-based debug logging for seedkit.
//
// Two orthogonal controls:
//   - Categories (WHAT to debug): SEEDKIT_DEBUG env or log.debug in config
//   - Levels (HOW MUCH detail): SEEDKIT_LOG_LEVEL env or log.level in config
//
// Usage:
//
//	debug.Log("providers", "request", "protocol", "chat", "model", model)
//	debug.Body("providers", "request body", body)
//
// Categories: providers, streaming, config, all.
// Levels: ERROR, WARN, INFO, DEBUG, TRACE.
package debug

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
)

// LevelTrace is below slog.LevelDebug for maximum verbosity.
// At TRACE, full untruncated request/response bodies are logged.
const LevelTrace = slog.LevelDebug - 4

// bodyPreview is how much of a body is logged at DEBUG level.
const bodyPreview = 512

// categories holds the set of enabled debug categories.
// Read-only after Setup.
var categories map[string]bool

// rawOut receives Raw output.
var rawOut io.Writer = os.Stderr

func init() {
	categories = parseCategories(os.Getenv("SEEDKIT_DEBUG"))
}

// Settings configures the logging stack.
type Settings struct {
	// Categories is a comma separated category list, overridden by SEEDKIT_DEBUG.
	Categories string
	// Level is the slog level name, overridden by SEEDKIT_LOG_LEVEL.
	Level string
	// JSON selects the JSON handler instead of text.
	JSON bool
	// Output defaults to stderr.
	Output io.Writer
}

// Setup installs the default slog logger and the enabled categories.
// Environment values take precedence over settings.
func Setup(s Settings) {
	cats := os.Getenv("SEEDKIT_DEBUG")
	if cats == "" {
		cats = s.Categories
	}
	categories = parseCategories(cats)

	level := os.Getenv("SEEDKIT_LOG_LEVEL")
	if level == "" {
		level = s.Level
	}

	out := s.Output
	if out == nil {
		out = os.Stderr
	}
	rawOut = out

	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var h slog.Handler
	if s.JSON {
		h = slog.NewJSONHandler(out, opts)
	} else {
		h = slog.NewTextHandler(out, opts)
	}
	slog.SetDefault(slog.New(h))
}

// Enabled reports whether debug output is active for the given category.
func Enabled(category string) bool {
	return categories["all"] || categories[category]
}

// Log emits a debug message for the given category.
// If the category is not enabled, this is a no-op.
func Log(category string, msg string, args ...any) {
	if !Enabled(category) {
		return
	}
	slog.Debug(msg, append([]any{"debug", category}, args...)...)
}

// Trace emits a trace-level message for the given category.
// Only visible when SEEDKIT_LOG_LEVEL=TRACE.
func Trace(category string, msg string, args ...any) {
	if !Enabled(category) {
		return
	}
	slog.Log(context.Background(), LevelTrace, msg, append([]any{"debug", category}, args...)...)
}

// TraceIsEnabled reports whether TRACE level is active for the given category.
func TraceIsEnabled(category string) bool {
	if !Enabled(category) {
		return false
	}
	return slog.Default().Enabled(context.Background(), LevelTrace)
}

// Raw writes plain text to the log output without any slog formatting.
// Only emitted when category is enabled AND level is TRACE.
func Raw(category string, text string) {
	if !TraceIsEnabled(category) {
		return
	}
	fmt.Fprintln(rawOut, text)
}

// Body logs an HTTP body: verbatim at TRACE, as a truncated attribute at DEBUG.
func Body(category string, label string, body []byte) {
	if !Enabled(category) {
		return
	}
	if TraceIsEnabled(category) {
		Raw(category, "--- "+label+" ---\n"+string(body))
		return
	}
	Log(category, label, "bytes", len(body), "body", Truncate(string(body), bodyPreview))
}

// ParseLevel converts a level string to a slog.Level.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return LevelTrace
	case "DEBUG":
		return slog.LevelDebug
	case "INFO", "":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Categories returns the enabled categories in sorted order.
func Categories() []string {
	result := make([]string, 0, len(categories))
	for k := range categories {
		result = append(result, k)
	}
	slices.Sort(result)
	return result
}

// Truncate returns s cut to at most maxLen bytes on a rune boundary, with
// "..." appended if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

func parseCategories(s string) map[string]bool {
	m := make(map[string]bool)
	for _, cat := range strings.Split(s, ",") {
		cat = strings.TrimSpace(strings.ToLower(cat))
		if cat != "" {
			m[cat] = true
		}
	}
	return m
}
