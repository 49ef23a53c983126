package provider

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
)

func TestUnsupportedSettingWarnings(t *testing.T) {
	all := &CallOptions{
		TopK:             ptr(40),
		PresencePenalty:  ptr(0.5),
		FrequencyPenalty: ptr(0.5),
		StopSequences:    []string{"END"},
		Seed:             ptr(7),
		Temperature:      ptr(0.2),
	}

	tests := []struct {
		name string
		caps Capabilities
		opts *CallOptions
		want []string
	}{
		{
			name: "chat drops everything but seed",
			caps: ChatCapabilities,
			opts: all,
			want: []string{"topK", "presencePenalty", "frequencyPenalty", "stopSequences"},
		},
		{
			name: "responses drops seed too",
			caps: ResponsesCapabilities,
			opts: all,
			want: []string{"topK", "presencePenalty", "frequencyPenalty", "stopSequences", "seed"},
		},
		{
			name: "supported settings only",
			caps: ResponsesCapabilities,
			opts: &CallOptions{Temperature: ptr(0.2), TopP: ptr(0.9), MaxOutputTokens: ptr(100)},
			want: nil,
		},
		{
			name: "empty stop sequences are not a setting",
			caps: ChatCapabilities,
			opts: &CallOptions{StopSequences: []string{}},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := UnsupportedSettingWarnings(tt.caps, tt.opts)
			var got []string
			for _, w := range warnings {
				if w.Type != api.WarningUnsupportedSetting {
					t.Errorf("warning type = %q, want %q", w.Type, api.WarningUnsupportedSetting)
				}
				got = append(got, w.Setting)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("settings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseProtocol(t *testing.T) {
	tests := []struct {
		in     string
		want   Protocol
		wantOK bool
	}{
		{"chat", ProtocolChat, true},
		{"responses", ProtocolResponses, true},
		{"Chat", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseProtocol(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseProtocol(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCallOptionsAccessors(t *testing.T) {
	var opts CallOptions
	if got := opts.Thinking(); got != "" {
		t.Errorf("Thinking() = %q, want empty", got)
	}
	if got := opts.Options(); got.User != "" || got.Store != nil {
		t.Errorf("Options() = %+v, want zero value", got)
	}

	opts.ProviderOptions = &ProviderOptions{Thinking: ThinkingAuto, User: "u1"}
	if got := opts.Thinking(); got != ThinkingAuto {
		t.Errorf("Thinking() = %q, want %q", got, ThinkingAuto)
	}
	if got := opts.Options().User; got != "u1" {
		t.Errorf("Options().User = %q, want u1", got)
	}
}

func TestFunctionToolParameters(t *testing.T) {
	if got := string(FunctionTool{Name: "f"}.Parameters()); got != `{"type":"object","properties":{}}` {
		t.Errorf("Parameters() = %s, want empty object schema", got)
	}
	schema := `{"type":"object","properties":{"q":{"type":"string"}}}`
	if got := string(FunctionTool{Name: "f", InputSchema: []byte(schema)}.Parameters()); got != schema {
		t.Errorf("Parameters() = %s, want %s", got, schema)
	}
}
