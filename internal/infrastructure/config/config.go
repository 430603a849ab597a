package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for huecore.
// All configuration is loaded from YAML and can be overridden by
// environment variables.
type Config struct {
	Bridge   BridgeConfig   `yaml:"bridge"`
	API      APIConfig      `yaml:"api"`
	Timeouts TimeoutConfig  `yaml:"timeouts"`
	Retry    RetryConfig    `yaml:"retry"`
	Dispatch DispatchConfig `yaml:"dispatch"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// BridgeConfig identifies the bridge and the credential for it.
type BridgeConfig struct {
	// IP is the bridge's local network address.
	IP string `yaml:"ip"`

	// ApplicationKey is the opaque credential minted by the link-button
	// pairing handshake. Sent as the hue-application-key header.
	ApplicationKey string `yaml:"application_key"`

	// ClientKey is the entertainment-streaming key from pairing.
	// Persisted but unused by this module.
	ClientKey string `yaml:"client_key,omitempty"`
}

// APIConfig contains CLIP v2 endpoint settings.
type APIConfig struct {
	// BasePath is the API prefix on the bridge. Default: /clip/v2
	BasePath string `yaml:"base_path"`

	// UseHTTPS selects the scheme. The bridge only serves the v2 API over
	// HTTPS; this exists for test harnesses.
	UseHTTPS bool `yaml:"use_https"`

	// VerifySSL enables certificate chain validation. Must stay false for
	// real bridges, which present self-signed certificates.
	VerifySSL bool `yaml:"verify_ssl"`
}

// TimeoutConfig contains network timeout settings in seconds.
type TimeoutConfig struct {
	Request    int `yaml:"request"`
	Connection int `yaml:"connection"`
}

// RetryConfig controls the read-retry policy. Only idempotent GETs are
// retried; writes always surface their first failure.
type RetryConfig struct {
	// MaxAttempts is the total number of tries per read, including the
	// first.
	MaxAttempts int `yaml:"max_attempts"`

	// InitialDelayMS is the first backoff delay in milliseconds.
	InitialDelayMS int `yaml:"initial_delay_ms"`

	// MaxDelayMS caps the backoff delay in milliseconds.
	MaxDelayMS int `yaml:"max_delay_ms"`
}

// DispatchConfig controls multi-target control dispatch.
type DispatchConfig struct {
	// Concurrency bounds in-flight requests during a room/zone fan-out.
	// The bridge is an embedded device; keep this small.
	Concurrency int `yaml:"concurrency"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment
// variable overrides.
//
// Loading order:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern HUECORE_SECTION_KEY, e.g.
// HUECORE_BRIDGE_IP, HUECORE_BRIDGE_APPLICATION_KEY.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Save writes configuration back to a YAML file. Used by the pairing flow
// to persist a freshly minted application key. The file is written with
// owner-only permissions since it contains the credential.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults. The bridge address and
// application key have no defaults and must come from the file, the
// environment, or the pairing flow.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BasePath:  "/clip/v2",
			UseHTTPS:  true,
			VerifySSL: false,
		},
		Timeouts: TimeoutConfig{
			Request:    10,
			Connection: 5,
		},
		Retry: RetryConfig{
			MaxAttempts:    3,
			InitialDelayMS: 250,
			MaxDelayMS:     2000,
		},
		Dispatch: DispatchConfig{
			Concurrency: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stderr",
		},
	}
}

// applyEnvOverrides applies environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HUECORE_BRIDGE_IP"); v != "" {
		cfg.Bridge.IP = v
	}
	if v := os.Getenv("HUECORE_BRIDGE_APPLICATION_KEY"); v != "" {
		cfg.Bridge.ApplicationKey = v
	}
	if v := os.Getenv("HUECORE_API_BASE_PATH"); v != "" {
		cfg.API.BasePath = v
	}
	if v := os.Getenv("HUECORE_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for errors.
//
// A config that cannot produce a working session (missing address or
// credential) is rejected here, at startup, rather than failing
// mid-operation.
func (c *Config) Validate() error {
	var errs []string

	if c.Bridge.IP == "" {
		errs = append(errs, "bridge.ip is required (run pairing or set HUECORE_BRIDGE_IP)")
	}
	if c.Bridge.ApplicationKey == "" {
		errs = append(errs, "bridge.application_key is required (run pairing first)")
	}
	if c.API.BasePath == "" || !strings.HasPrefix(c.API.BasePath, "/") {
		errs = append(errs, "api.base_path must start with /")
	}
	if c.Timeouts.Request < 1 {
		errs = append(errs, "timeouts.request must be at least 1 second")
	}
	if c.Timeouts.Connection < 1 {
		errs = append(errs, "timeouts.connection must be at least 1 second")
	}
	if c.Retry.MaxAttempts < 1 {
		errs = append(errs, "retry.max_attempts must be at least 1")
	}
	if c.Dispatch.Concurrency < 1 || c.Dispatch.Concurrency > 32 {
		errs = append(errs, "dispatch.concurrency must be between 1 and 32")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// GetRequestTimeout returns the per-request timeout as a Duration.
func (c *Config) GetRequestTimeout() time.Duration {
	return time.Duration(c.Timeouts.Request) * time.Second
}

// GetConnectionTimeout returns the connection-establish timeout as a
// Duration.
func (c *Config) GetConnectionTimeout() time.Duration {
	return time.Duration(c.Timeouts.Connection) * time.Second
}

// GetInitialDelay returns the first retry delay as a Duration.
func (r RetryConfig) GetInitialDelay() time.Duration {
	return time.Duration(r.InitialDelayMS) * time.Millisecond
}

// GetMaxDelay returns the retry delay cap as a Duration.
func (r RetryConfig) GetMaxDelay() time.Duration {
	return time.Duration(r.MaxDelayMS) * time.Millisecond
}
