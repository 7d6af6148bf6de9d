package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SPONGE_API_KEY", "SPONGE_BASE_URL", "SPONGE_AGENT_ID", "SPONGE_TESTNET",
		"SPONGE_NO_BROWSER", "SPONGE_CREDENTIALS_DIR", "SPONGE_HTTP_TIMEOUT",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.True(t, cfg.IsDefaultBaseURL())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SPONGE_API_KEY", "sponge_env")
	t.Setenv("SPONGE_BASE_URL", "http://localhost:8787")
	t.Setenv("SPONGE_AGENT_ID", "3f2b8c1e-5d4a-4c6b-9e7f-1a2b3c4d5e6f")
	t.Setenv("SPONGE_TESTNET", "true")
	t.Setenv("SPONGE_NO_BROWSER", "1")
	t.Setenv("SPONGE_CREDENTIALS_DIR", "/tmp/sponge")
	t.Setenv("SPONGE_HTTP_TIMEOUT", "5")

	cfg := NewConfig()
	cfg.LoadFromEnvironment()

	assert.Equal(t, "sponge_env", cfg.APIKey)
	assert.Equal(t, "http://localhost:8787", cfg.BaseURL)
	assert.False(t, cfg.IsDefaultBaseURL())
	assert.Equal(t, "3f2b8c1e-5d4a-4c6b-9e7f-1a2b3c4d5e6f", cfg.AgentID)
	assert.True(t, cfg.Testnet)
	assert.True(t, cfg.NoBrowser)
	assert.Equal(t, "/tmp/sponge", cfg.CredentialsDir)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
}

func TestExplicitValuesWin(t *testing.T) {
	clearEnv(t)
	t.Setenv("SPONGE_API_KEY", "sponge_env")
	t.Setenv("SPONGE_BASE_URL", "http://localhost:8787")

	cfg := NewConfig()
	cfg.APIKey = "sponge_explicit"
	cfg.BaseURL = "https://staging.example.com"
	cfg.LoadFromEnvironment()

	assert.Equal(t, "sponge_explicit", cfg.APIKey)
	assert.Equal(t, "https://staging.example.com", cfg.BaseURL)
}

func TestResolvedBaseURL(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, DefaultBaseURL, cfg.ResolvedBaseURL())
	assert.True(t, cfg.IsDefaultBaseURL())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad scheme", func(c *Config) { c.BaseURL = "ftp://example.com" }, "http or https"},
		{"no host", func(c *Config) { c.BaseURL = "http://" }, "must include a host"},
		{"bad agent id", func(c *Config) { c.AgentID = "agent-1" }, "must be a UUID"},
		{"long name", func(c *Config) { c.AgentName = string(make([]byte, 256)) }, "at most 255"},
		{"negative timeout", func(c *Config) { c.HTTPTimeout = -time.Second }, "non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}
