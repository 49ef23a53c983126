// Package config provides unified configuration for seedkit.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (SEEDKIT_ prefix, plus ARK_API_KEY)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
package config

import "time"

// DefaultBaseURL is the public Ark endpoint.
const DefaultBaseURL = "https://ark.cn-beijing.volces.com/api/v3"

// Config holds all configuration for seedkit.
type Config struct {
	Provider      ProviderConfig      `yaml:"provider"`
	Log           LogConfig           `yaml:"log"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ProviderConfig holds the Ark connection and protocol settings.
type ProviderConfig struct {
	BaseURL      string                 `yaml:"base_url"`      // default: DefaultBaseURL
	APIKey       string                 `yaml:"api_key"`       // required
	APIKeyFile   string                 `yaml:"api_key_file"`  // _file variant for api_key
	DefaultModel string                 `yaml:"default_model"` // optional
	Protocol     string                 `yaml:"protocol"`      // "chat" or "responses", default: "chat"
	Timeout      time.Duration          `yaml:"timeout"`       // default: 120s, non-streaming only
	Models       map[string]ModelConfig `yaml:"models"`        // per-model overrides
}

// ModelConfig overrides provider settings for one model id.
type ModelConfig struct {
	Protocol string `yaml:"protocol"`
}

// LogConfig holds logging settings. SEEDKIT_LOG_LEVEL and SEEDKIT_DEBUG
// take precedence at setup time.
type LogConfig struct {
	Level string `yaml:"level"` // default: "INFO"
	Debug string `yaml:"debug"` // comma separated debug categories
	JSON  bool   `yaml:"json"`
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: false
	Addr    string `yaml:"addr"`    // default: ":9464"
	Path    string `yaml:"path"`    // default: "/metrics"
}

// ProtocolFor returns the protocol configured for model, falling back to the
// provider-wide protocol.
func (c *ProviderConfig) ProtocolFor(model string) string {
	if m, ok := c.Models[model]; ok && m.Protocol != "" {
		return m.Protocol
	}
	return c.Protocol
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Provider: ProviderConfig{
			BaseURL:  DefaultBaseURL,
			Protocol: "chat",
			Timeout:  120 * time.Second,
		},
		Log: LogConfig{
			Level: "INFO",
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Addr: ":9464",
				Path: "/metrics",
			},
		},
	}
}
