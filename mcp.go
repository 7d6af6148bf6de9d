package spongewallet

import (
	"strings"

	"github.com/paysponge/spongewallet-go/config"
)

// MCPConfig points an MCP-capable agent runtime at the hosted wallet server.
type MCPConfig struct {
	URL     string            `json:"url" yaml:"url"`
	Headers map[string]string `json:"headers" yaml:"headers"`
}

// NewMCPConfig builds the server entry for apiKey. An empty baseURL means production.
func NewMCPConfig(apiKey, baseURL string) MCPConfig {
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	return MCPConfig{
		URL: strings.TrimRight(baseURL, "/") + "/mcp",
		Headers: map[string]string{
			"Authorization": "Bearer " + apiKey,
		},
	}
}
