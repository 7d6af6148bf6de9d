package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// DefaultBaseURL is the production Sponge wallet API.
const DefaultBaseURL = "https://api.wallet.paysponge.com"

// DefaultAgentName is used when a device-flow login does not name its agent.
const DefaultAgentName = "Default Agent"

// Config holds everything needed to open a wallet session.
type Config struct {
	// API settings
	BaseURL     string
	APIKey      string
	HTTPTimeout time.Duration

	// Agent settings
	AgentID   string
	AgentName string
	Testnet   bool

	// Login settings
	NoBrowser bool

	// CredentialsDir overrides ~/.spongewallet
	CredentialsDir string
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		BaseURL:     DefaultBaseURL,
		HTTPTimeout: 30 * time.Second,
	}
}

// LoadFromEnvironment fills settings that were not set explicitly from
// SPONGE_* environment variables.
func (c *Config) LoadFromEnvironment() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("SPONGE_API_KEY")
	}

	if baseURL := os.Getenv("SPONGE_BASE_URL"); baseURL != "" && (c.BaseURL == "" || c.BaseURL == DefaultBaseURL) {
		c.BaseURL = baseURL
	}

	if c.AgentID == "" {
		c.AgentID = os.Getenv("SPONGE_AGENT_ID")
	}

	if testnet := os.Getenv("SPONGE_TESTNET"); testnet != "" && !c.Testnet {
		if t, err := strconv.ParseBool(testnet); err == nil {
			c.Testnet = t
		}
	}

	if noBrowser := os.Getenv("SPONGE_NO_BROWSER"); noBrowser != "" && !c.NoBrowser {
		if nb, err := strconv.ParseBool(noBrowser); err == nil {
			c.NoBrowser = nb
		}
	}

	if dir := os.Getenv("SPONGE_CREDENTIALS_DIR"); dir != "" && c.CredentialsDir == "" {
		c.CredentialsDir = dir
	}

	if timeout := os.Getenv("SPONGE_HTTP_TIMEOUT"); timeout != "" {
		if t, err := strconv.Atoi(timeout); err == nil {
			c.HTTPTimeout = time.Duration(t) * time.Second
		}
	}
}

// ResolvedBaseURL returns BaseURL or the production default when unset.
func (c *Config) ResolvedBaseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return c.BaseURL
}

// IsDefaultBaseURL reports whether the session talks to production.
func (c *Config) IsDefaultBaseURL() bool {
	return c.ResolvedBaseURL() == DefaultBaseURL
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	u, err := url.Parse(c.ResolvedBaseURL())
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base URL must use http or https, got: %q", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base URL must include a host, got: %q", c.BaseURL)
	}

	if c.AgentID != "" {
		if _, err := uuid.Parse(c.AgentID); err != nil {
			return fmt.Errorf("agent ID must be a UUID, got: %q", c.AgentID)
		}
	}

	if len(c.AgentName) > 255 {
		return fmt.Errorf("agent name must be at most 255 characters, got: %d", len(c.AgentName))
	}

	if c.HTTPTimeout < 0 {
		return fmt.Errorf("HTTP timeout must be non-negative, got: %v", c.HTTPTimeout)
	}

	return nil
}
