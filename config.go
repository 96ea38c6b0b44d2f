package woopra

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultBaseURL is the service origin every request path is resolved against.
	DefaultBaseURL = "http://www.woopra.com"
	// DefaultIdleTimeout is the session idle expiry, in milliseconds.
	DefaultIdleTimeout int64 = 300000
	// DefaultSDKID is reported as ce_app; "python" keeps existing integrations attributing the same way.
	DefaultSDKID = "python"
)

// Config is the per-site tracker configuration.
// A nil IdleTimeoutMillis omits the timeout parameter from tracking requests.
type Config struct {
	Domain            string `yaml:"domain"`
	AccessKey         string `yaml:"access_key"`
	IdleTimeoutMillis *int64 `yaml:"idle_timeout"`
	SDKID             string `yaml:"sdk_id"`
	BaseURL           string `yaml:"base_url"`
}

func NewConfig(domain, accessKey string) *Config {
	cfg := &Config{
		Domain:    domain,
		AccessKey: accessKey,
	}
	cfg.applyDefaults()

	return cfg
}

// LoadConfig reads a YAML tracker config. Absent keys get their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.IdleTimeoutMillis == nil {
		timeout := DefaultIdleTimeout
		c.IdleTimeoutMillis = &timeout
	}
	if c.SDKID == "" {
		c.SDKID = DefaultSDKID
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
}
