package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate clears every variable the loader reads so the host environment
// cannot leak into a test.
func isolate(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SEEDKIT_CONFIG", "SEEDKIT_BASE_URL", "SEEDKIT_API_KEY", "ARK_API_KEY",
		"SEEDKIT_MODEL", "SEEDKIT_PROTOCOL", "SEEDKIT_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Provider.BaseURL != DefaultBaseURL {
		t.Errorf("default provider.base_url = %q, want %q", cfg.Provider.BaseURL, DefaultBaseURL)
	}
	if cfg.Provider.Protocol != "chat" {
		t.Errorf("default provider.protocol = %q, want \"chat\"", cfg.Provider.Protocol)
	}
	if cfg.Provider.Timeout != 120*time.Second {
		t.Errorf("default provider.timeout = %v, want 120s", cfg.Provider.Timeout)
	}
	if cfg.Log.Level != "INFO" {
		t.Errorf("default log.level = %q, want \"INFO\"", cfg.Log.Level)
	}
	if cfg.Observability.Metrics.Enabled {
		t.Error("metrics should be disabled by default")
	}
	if cfg.Observability.Metrics.Path != "/metrics" {
		t.Errorf("default observability.metrics.path = %q, want \"/metrics\"", cfg.Observability.Metrics.Path)
	}
}

func TestLoadFromYAML(t *testing.T) {
	isolate(t)
	yamlContent := `
provider:
  base_url: http://localhost:8080/api/v3
  api_key: sk-test-key
  default_model: doubao-seed-1-6-250615
  protocol: responses
  timeout: 30s
  models:
    doubao-1-5-pro-32k:
      protocol: chat
log:
  level: DEBUG
  debug: providers,streaming
observability:
  metrics:
    enabled: true
    addr: ":9100"
`
	cfg, err := Load(writeTemp(t, "config-*.yaml", yamlContent))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Provider.BaseURL != "http://localhost:8080/api/v3" {
		t.Errorf("provider.base_url = %q", cfg.Provider.BaseURL)
	}
	if cfg.Provider.APIKey != "sk-test-key" {
		t.Errorf("provider.api_key = %q, want \"sk-test-key\"", cfg.Provider.APIKey)
	}
	if cfg.Provider.DefaultModel != "doubao-seed-1-6-250615" {
		t.Errorf("provider.default_model = %q", cfg.Provider.DefaultModel)
	}
	if cfg.Provider.Timeout != 30*time.Second {
		t.Errorf("provider.timeout = %v, want 30s", cfg.Provider.Timeout)
	}
	if got := cfg.Provider.ProtocolFor("doubao-1-5-pro-32k"); got != "chat" {
		t.Errorf("ProtocolFor(override) = %q, want \"chat\"", got)
	}
	if got := cfg.Provider.ProtocolFor("other"); got != "responses" {
		t.Errorf("ProtocolFor(other) = %q, want \"responses\"", got)
	}
	if cfg.Log.Level != "DEBUG" || cfg.Log.Debug != "providers,streaming" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if !cfg.Observability.Metrics.Enabled || cfg.Observability.Metrics.Addr != ":9100" {
		t.Errorf("observability.metrics = %+v", cfg.Observability.Metrics)
	}
	// Not present in the YAML, so the default survives.
	if cfg.Observability.Metrics.Path != "/metrics" {
		t.Errorf("observability.metrics.path = %q, want \"/metrics\"", cfg.Observability.Metrics.Path)
	}
}

func TestEnvOverride(t *testing.T) {
	isolate(t)
	tmpFile := writeTemp(t, "config-*.yaml", `
provider:
  base_url: http://from-yaml:8000
  api_key: sk-yaml
  default_model: yaml-model
  protocol: chat
`)

	t.Setenv("SEEDKIT_BASE_URL", "http://from-env:8000")
	t.Setenv("SEEDKIT_MODEL", "env-model")
	t.Setenv("SEEDKIT_PROTOCOL", "responses")
	t.Setenv("SEEDKIT_TIMEOUT", "45s")

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Provider.BaseURL != "http://from-env:8000" {
		t.Errorf("provider.base_url = %q, want env value", cfg.Provider.BaseURL)
	}
	if cfg.Provider.DefaultModel != "env-model" {
		t.Errorf("provider.default_model = %q, want env value", cfg.Provider.DefaultModel)
	}
	if cfg.Provider.Protocol != "responses" {
		t.Errorf("provider.protocol = %q, want env value", cfg.Provider.Protocol)
	}
	if cfg.Provider.Timeout != 45*time.Second {
		t.Errorf("provider.timeout = %v, want 45s", cfg.Provider.Timeout)
	}
	if cfg.Provider.APIKey != "sk-yaml" {
		t.Errorf("provider.api_key = %q, want yaml value", cfg.Provider.APIKey)
	}
}

func TestEnvOverrideAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		ark     string
		seedkit string
		want    string
	}{
		{"ark only", "sk-ark", "", "sk-ark"},
		{"seedkit only", "", "sk-seedkit", "sk-seedkit"},
		{"seedkit wins", "sk-ark", "sk-seedkit", "sk-seedkit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv("ARK_API_KEY", tt.ark)
			t.Setenv("SEEDKIT_API_KEY", tt.seedkit)

			cfg, err := Load("")
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if cfg.Provider.APIKey != tt.want {
				t.Errorf("provider.api_key = %q, want %q", cfg.Provider.APIKey, tt.want)
			}
		})
	}
}

func TestInvalidTimeoutEnv(t *testing.T) {
	isolate(t)
	t.Setenv("SEEDKIT_API_KEY", "sk")
	t.Setenv("SEEDKIT_TIMEOUT", "soon")

	_, err := Load("")
	if err == nil || !strings.Contains(err.Error(), "SEEDKIT_TIMEOUT") {
		t.Fatalf("Load() error = %v, want SEEDKIT_TIMEOUT error", err)
	}
}

func TestFileReference(t *testing.T) {
	isolate(t)
	secretFile := writeTemp(t, "secret-*.txt", "  sk-from-file-123  \n")
	tmpFile := writeTemp(t, "config-*.yaml", "provider:\n  api_key_file: "+secretFile+"\n")

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Provider.APIKey != "sk-from-file-123" {
		t.Errorf("provider.api_key = %q, want \"sk-from-file-123\"", cfg.Provider.APIKey)
	}
}

func TestFileReferenceMissing(t *testing.T) {
	isolate(t)
	tmpFile := writeTemp(t, "config-*.yaml", "provider:\n  api_key_file: /nonexistent/key\n")

	_, err := Load(tmpFile)
	if err == nil || !strings.Contains(err.Error(), "provider.api_key_file") {
		t.Fatalf("Load() error = %v, want provider.api_key_file error", err)
	}
}

func TestFileDiscovery(t *testing.T) {
	isolate(t)

	envFile := writeTemp(t, "envconfig-*.yaml", "provider:\n  api_key: sk-from-env-config\n")
	t.Setenv("SEEDKIT_CONFIG", envFile)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Provider.APIKey != "sk-from-env-config" {
		t.Errorf("SEEDKIT_CONFIG not honored, api_key = %q", cfg.Provider.APIKey)
	}

	t.Setenv("SEEDKIT_CONFIG", "")
	if err := os.WriteFile("seedkit.yaml", []byte("provider:\n  api_key: sk-from-cwd\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Provider.APIKey != "sk-from-cwd" {
		t.Errorf("./seedkit.yaml not honored, api_key = %q", cfg.Provider.APIKey)
	}
}

func TestFileDiscoveryHome(t *testing.T) {
	isolate(t)
	dir := filepath.Join(os.Getenv("HOME"), ".config", "seedkit")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("provider:\n  api_key: sk-from-home\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Provider.APIKey != "sk-from-home" {
		t.Errorf("home config not honored, api_key = %q", cfg.Provider.APIKey)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:    "missing api key",
			modify:  func(c *Config) { c.Provider.APIKey = "" },
			wantErr: "provider.api_key is required",
		},
		{
			name:    "relative base url",
			modify:  func(c *Config) { c.Provider.BaseURL = "ark.local/api/v3" },
			wantErr: "provider.base_url must be an absolute URL",
		},
		{
			name:    "unknown protocol",
			modify:  func(c *Config) { c.Provider.Protocol = "grpc" },
			wantErr: "provider.protocol must be",
		},
		{
			name: "unknown model protocol",
			modify: func(c *Config) {
				c.Provider.Models = map[string]ModelConfig{"m": {Protocol: "websocket"}}
			},
			wantErr: "provider.models[m].protocol",
		},
		{
			name:    "negative timeout",
			modify:  func(c *Config) { c.Provider.Timeout = -time.Second },
			wantErr: "provider.timeout must be >= 0",
		},
		{
			name: "metrics without addr",
			modify: func(c *Config) {
				c.Observability.Metrics.Enabled = true
				c.Observability.Metrics.Addr = ""
			},
			wantErr: "observability.metrics.addr is required",
		},
		{
			name:   "valid",
			modify: func(c *Config) {},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			cfg.Provider.APIKey = "sk"
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidationJoinsErrors(t *testing.T) {
	cfg := Defaults()
	cfg.Provider.Protocol = "x"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	for _, want := range []string{"provider.api_key", "provider.protocol"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error %q missing %q", err, want)
		}
	}
}

func writeTemp(t *testing.T, pattern, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), pattern)
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return f.Name()
}
