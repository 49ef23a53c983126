package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	if c.Provider.APIKey == "" {
		errs = append(errs, fmt.Errorf("provider.api_key is required (or provider.api_key_file, SEEDKIT_API_KEY, ARK_API_KEY)"))
	}

	if u, err := url.Parse(c.Provider.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("provider.base_url must be an absolute URL, got %q", c.Provider.BaseURL))
	}

	if !validProtocol(c.Provider.Protocol) {
		errs = append(errs, fmt.Errorf("provider.protocol must be \"chat\" or \"responses\", got %q", c.Provider.Protocol))
	}
	for model, m := range c.Provider.Models {
		if m.Protocol != "" && !validProtocol(m.Protocol) {
			errs = append(errs, fmt.Errorf("provider.models[%s].protocol must be \"chat\" or \"responses\", got %q", model, m.Protocol))
		}
	}

	if c.Provider.Timeout < 0 {
		errs = append(errs, fmt.Errorf("provider.timeout must be >= 0, got %s", c.Provider.Timeout))
	}

	if c.Observability.Metrics.Enabled && c.Observability.Metrics.Addr == "" {
		errs = append(errs, fmt.Errorf("observability.metrics.addr is required when metrics are enabled"))
	}

	return errors.Join(errs...)
}

func validProtocol(p string) bool {
	return p == "chat" || p == "responses"
}
