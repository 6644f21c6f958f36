// Package config holds the application configuration of laneboard.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config represents the full laneboard configuration
type Config struct {
	WebAPI  WebAPIConfig  `koanf:"webapi"`
	Session SessionConfig `koanf:"session"`
	Board   BoardConfig   `koanf:"board"`
	Logging LoggingConfig `koanf:"logging"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// WebAPIConfig contains the connection to the Dataverse Web API
type WebAPIConfig struct {
	BaseURL        string            `koanf:"base_url"`
	APIVersion     string            `koanf:"api_version"`
	TenantID       string            `koanf:"tenant_id"`
	ClientID       string            `koanf:"client_id"`
	ClientSecret   string            `koanf:"client_secret"`
	Token          string            `koanf:"token"` // Static bearer token, used when no client id is set
	TimeoutMs      int               `koanf:"timeout_ms"`
	RateLimit      float64           `koanf:"rate_limit"` // Requests per second
	Burst          int               `koanf:"burst"`
	EntitySetNames map[string]string `koanf:"entity_set_names"`
}

// Timeout returns the per-request timeout
func (c WebAPIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// SessionConfig identifies the user and the app forms open in
type SessionConfig struct {
	UserID string `koanf:"user_id"` // Optional: resolved with WhoAmI when empty
	AppID  string `koanf:"app_id"`
	Opener string `koanf:"opener"` // Optional: command that opens URLs
}

// BoardConfig contains board behaviour settings
type BoardConfig struct {
	UserConfigAttribute string `koanf:"user_config_attribute"`
	StateAttribute      string `koanf:"state_attribute"`
}

// LoggingConfig contains log output settings
type LoggingConfig struct {
	Level string `koanf:"level"`
	File  string `koanf:"file"`
}

// MetricsConfig contains the metrics endpoint settings
type MetricsConfig struct {
	Addr string `koanf:"addr"` // Empty disables the endpoint
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		WebAPI: WebAPIConfig{
			APIVersion:     "9.2",
			TimeoutMs:      30000,
			RateLimit:      10,
			Burst:          5,
			EntitySetNames: make(map[string]string),
		},
		Board: BoardConfig{
			UserConfigAttribute: "oss_defaultboardid",
			StateAttribute:      "statecode",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, ".laneboard", "laneboard.log"),
		},
	}
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	// Merge WebAPI config
	if cfg.WebAPI.APIVersion == "" {
		cfg.WebAPI.APIVersion = defaults.WebAPI.APIVersion
	}
	if cfg.WebAPI.TimeoutMs == 0 {
		cfg.WebAPI.TimeoutMs = defaults.WebAPI.TimeoutMs
	}
	if cfg.WebAPI.RateLimit == 0 {
		cfg.WebAPI.RateLimit = defaults.WebAPI.RateLimit
	}
	if cfg.WebAPI.Burst == 0 {
		cfg.WebAPI.Burst = defaults.WebAPI.Burst
	}
	if cfg.WebAPI.EntitySetNames == nil {
		cfg.WebAPI.EntitySetNames = defaults.WebAPI.EntitySetNames
	}

	// Merge Board config
	if cfg.Board.UserConfigAttribute == "" {
		cfg.Board.UserConfigAttribute = defaults.Board.UserConfigAttribute
	}
	if cfg.Board.StateAttribute == "" {
		cfg.Board.StateAttribute = defaults.Board.StateAttribute
	}

	// Merge Logging config
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}
	if cfg.Logging.File == "" {
		cfg.Logging.File = defaults.Logging.File
	}

	return cfg
}

// Validate checks the configuration for values the board cannot start with
func (c *Config) Validate() error {
	if c.WebAPI.BaseURL == "" {
		return errors.New("webapi.base_url is required")
	}
	u, err := url.Parse(c.WebAPI.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid webapi.base_url %q", c.WebAPI.BaseURL)
	}
	if c.WebAPI.ClientID != "" && c.WebAPI.ClientSecret == "" {
		return errors.New("webapi.client_secret is required with webapi.client_id")
	}
	if c.WebAPI.TimeoutMs < 0 {
		return fmt.Errorf("invalid webapi.timeout_ms: %d", c.WebAPI.TimeoutMs)
	}
	if c.WebAPI.RateLimit < 0 {
		return fmt.Errorf("invalid webapi.rate_limit: %v", c.WebAPI.RateLimit)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level %q (debug, info, warn, error)", c.Logging.Level)
	}

	return nil
}
