package provider

import (
	"github.com/SweetRetry/seedkit-ai/pkg/api"
)

// Capabilities declares which generic call settings a protocol can send.
// Settings a protocol lacks are dropped with a warning.
type Capabilities struct {
	TopK             bool
	PresencePenalty  bool
	FrequencyPenalty bool
	StopSequences    bool
	Seed             bool
}

// ChatCapabilities describes the chat-completions protocol.
var ChatCapabilities = Capabilities{
	Seed: true,
}

// ResponsesCapabilities describes the responses protocol.
var ResponsesCapabilities = Capabilities{}

// UnsupportedSettingWarnings returns one unsupported-setting warning per
// call setting that is set but not supported by caps. The order is fixed:
// topK, presencePenalty, frequencyPenalty, stopSequences, seed.
func UnsupportedSettingWarnings(caps Capabilities, opts *CallOptions) []api.CallWarning {
	var warnings []api.CallWarning
	add := func(setting string) {
		warnings = append(warnings, api.CallWarning{
			Type:    api.WarningUnsupportedSetting,
			Setting: setting,
		})
	}

	if opts.TopK != nil && !caps.TopK {
		add("topK")
	}
	if opts.PresencePenalty != nil && !caps.PresencePenalty {
		add("presencePenalty")
	}
	if opts.FrequencyPenalty != nil && !caps.FrequencyPenalty {
		add("frequencyPenalty")
	}
	if len(opts.StopSequences) > 0 && !caps.StopSequences {
		add("stopSequences")
	}
	if opts.Seed != nil && !caps.Seed {
		add("seed")
	}
	return warnings
}
