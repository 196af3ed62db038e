// Package config loads hostsnap configuration from an optional YAML file
// and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all hostsnap settings. Precedence: defaults, then the YAML
// config file, then environment variables.
type Config struct {
	// ListenAddr is the serve-mode listen address.
	ListenAddr string `yaml:"listen_addr"`
	// AuthToken, when set, requires Bearer authentication on the API.
	AuthToken string `yaml:"auth_token"`
	// Pool selects the ZFS pool for the pool-space probe; empty means all
	// top-level pools.
	Pool string `yaml:"pool"`
	// MaxConcurrent bounds simultaneous tool subprocesses.
	MaxConcurrent int64 `yaml:"max_concurrent"`
	// TimeoutSeconds is the default per-probe budget.
	TimeoutSeconds int `yaml:"timeout_seconds"`
	// ProbeTimeoutSeconds overrides the budget for individual probes.
	ProbeTimeoutSeconds map[string]int `yaml:"probe_timeout_seconds"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ListenAddr:     ":8093",
		MaxConcurrent:  8,
		TimeoutSeconds: 10,
		LogLevel:       "info",
	}
}

// Load builds the configuration. path may be empty, in which case only the
// HOSTSNAP_CONFIG environment variable selects a file.
func Load(path string) (*Config, error) {
	godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv("HOSTSNAP_CONFIG")
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if v := os.Getenv("HOSTSNAP_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("HOSTSNAP_AUTH_TOKEN"); v != "" {
		cfg.AuthToken = v
	}
	if v := os.Getenv("HOSTSNAP_POOL"); v != "" {
		cfg.Pool = v
	}
	if v := os.Getenv("HOSTSNAP_MAX_CONCURRENT"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse HOSTSNAP_MAX_CONCURRENT: %w", err)
		}
		cfg.MaxConcurrent = n
	}
	if v := os.Getenv("HOSTSNAP_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse HOSTSNAP_TIMEOUT_SECONDS: %w", err)
		}
		cfg.TimeoutSeconds = n
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.MaxConcurrent < 1 {
		return fmt.Errorf("max_concurrent must be at least 1, got %d", c.MaxConcurrent)
	}
	if c.TimeoutSeconds < 1 {
		return fmt.Errorf("timeout_seconds must be at least 1, got %d", c.TimeoutSeconds)
	}
	for name, secs := range c.ProbeTimeoutSeconds {
		if secs < 1 {
			return fmt.Errorf("probe_timeout_seconds[%s] must be at least 1, got %d", name, secs)
		}
	}
	return nil
}

// DefaultTimeout returns the default per-probe budget as a duration.
func (c *Config) DefaultTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ProbeTimeouts returns the per-probe overrides as durations.
func (c *Config) ProbeTimeouts() map[string]time.Duration {
	if len(c.ProbeTimeoutSeconds) == 0 {
		return nil
	}
	timeouts := make(map[string]time.Duration, len(c.ProbeTimeoutSeconds))
	for name, secs := range c.ProbeTimeoutSeconds {
		timeouts[name] = time.Duration(secs) * time.Second
	}
	return timeouts
}
