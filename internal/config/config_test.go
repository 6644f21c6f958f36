package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Test web api defaults
	assert.Equal(t, "9.2", cfg.WebAPI.APIVersion)
	assert.Equal(t, 30000, cfg.WebAPI.TimeoutMs)
	assert.Equal(t, 30*time.Second, cfg.WebAPI.Timeout())
	assert.Equal(t, 10.0, cfg.WebAPI.RateLimit)
	assert.Equal(t, 5, cfg.WebAPI.Burst)
	assert.NotNil(t, cfg.WebAPI.EntitySetNames)

	// Test board defaults
	assert.Equal(t, "oss_defaultboardid", cfg.Board.UserConfigAttribute)
	assert.Equal(t, "statecode", cfg.Board.StateAttribute)

	// Test logging defaults
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Contains(t, cfg.Logging.File, filepath.Join(".laneboard", "laneboard.log"))

	// Metrics are off by default
	assert.Empty(t, cfg.Metrics.Addr)
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		WebAPI: WebAPIConfig{
			BaseURL:   "https://org.crm.dynamics.com",
			TimeoutMs: 5000,
		},
		Board: BoardConfig{
			StateAttribute: "customstate",
		},
	}

	merged := MergeWithDefaults(cfg)

	// Custom values preserved
	assert.Equal(t, "https://org.crm.dynamics.com", merged.WebAPI.BaseURL)
	assert.Equal(t, 5000, merged.WebAPI.TimeoutMs)
	assert.Equal(t, "customstate", merged.Board.StateAttribute)

	// Defaults filled in
	assert.Equal(t, "9.2", merged.WebAPI.APIVersion)
	assert.Equal(t, "oss_defaultboardid", merged.Board.UserConfigAttribute)
	assert.Equal(t, "info", merged.Logging.Level)
	assert.NotNil(t, merged.WebAPI.EntitySetNames)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.WebAPI.BaseURL = "https://org.crm.dynamics.com"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing base url",
			mutate:  func(c *Config) { c.WebAPI.BaseURL = "" },
			wantErr: "webapi.base_url is required",
		},
		{
			name:    "relative base url",
			mutate:  func(c *Config) { c.WebAPI.BaseURL = "org.crm.dynamics.com" },
			wantErr: "invalid webapi.base_url",
		},
		{
			name:    "client id without secret",
			mutate:  func(c *Config) { c.WebAPI.ClientID = "client" },
			wantErr: "client_secret is required",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.WebAPI.TimeoutMs = -1 },
			wantErr: "timeout_ms",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "logging.level",
		},
		{
			name:   "log level is case insensitive",
			mutate: func(c *Config) { c.Logging.Level = "DEBUG" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func writeConfig(t *testing.T, content string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	require.NoError(t, os.Chmod(path, perm))
	return path
}

func TestLoad_FromYAML(t *testing.T) {
	path := writeConfig(t, `
webapi:
  base_url: https://contoso.crm4.dynamics.com
  client_id: client
  client_secret: secret
  tenant_id: tenant
  rate_limit: 2.5
  entity_set_names:
    oss_board: oss_boardset
session:
  app_id: 11111111-2222-3333-4444-555555555555
board:
  state_attribute: customstate
logging:
  level: debug
metrics:
  addr: 127.0.0.1:9464
`, 0o600)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://contoso.crm4.dynamics.com", cfg.WebAPI.BaseURL)
	assert.Equal(t, "client", cfg.WebAPI.ClientID)
	assert.Equal(t, "tenant", cfg.WebAPI.TenantID)
	assert.Equal(t, 2.5, cfg.WebAPI.RateLimit)
	assert.Equal(t, map[string]string{"oss_board": "oss_boardset"}, cfg.WebAPI.EntitySetNames)
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", cfg.Session.AppID)
	assert.Equal(t, "customstate", cfg.Board.StateAttribute)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "127.0.0.1:9464", cfg.Metrics.Addr)

	// Defaults fill the rest
	assert.Equal(t, "9.2", cfg.WebAPI.APIVersion)
	assert.Equal(t, "oss_defaultboardid", cfg.Board.UserConfigAttribute)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
webapi:
  base_url: https://file.crm.dynamics.com
logging:
  level: warn
`, 0o600)

	t.Setenv("LANEBOARD_WEBAPI_BASE_URL", "https://env.crm.dynamics.com")
	t.Setenv("LANEBOARD_WEBAPI_TIMEOUT_MS", "1500")
	t.Setenv("LANEBOARD_SESSION_USER_ID", "{6F9619FF-8B86-D011-B42D-00C04FC964FF}")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.crm.dynamics.com", cfg.WebAPI.BaseURL)
	assert.Equal(t, 1500, cfg.WebAPI.TimeoutMs)
	assert.Equal(t, "{6F9619FF-8B86-D011-B42D-00C04FC964FF}", cfg.Session.UserID)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("LANEBOARD_WEBAPI_BASE_URL", "https://env.crm.dynamics.com")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "https://env.crm.dynamics.com", cfg.WebAPI.BaseURL)
	assert.Equal(t, 30000, cfg.WebAPI.TimeoutMs)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		perm    os.FileMode
		wantErr string
	}{
		{
			name:    "invalid yaml",
			content: "webapi: [unclosed",
			perm:    0o600,
			wantErr: "failed to load config file",
		},
		{
			name:    "missing base url",
			content: "logging:\n  level: info\n",
			perm:    0o600,
			wantErr: "webapi.base_url is required",
		},
		{
			name:    "world readable",
			content: "webapi:\n  base_url: https://org.crm.dynamics.com\n",
			perm:    0o644,
			wantErr: "insecure config file permissions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content, tt.perm)

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"LANEBOARD_WEBAPI_BASE_URL":             "webapi.base_url",
		"LANEBOARD_METRICS_ADDR":                "metrics.addr",
		"LANEBOARD_BOARD_USER_CONFIG_ATTRIBUTE": "board.user_config_attribute",
		"LANEBOARD_DEBUG":                       "debug",
	}

	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}
