package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	spongewallet "github.com/paysponge/spongewallet-go"
	"github.com/paysponge/spongewallet-go/client"
	"github.com/paysponge/spongewallet-go/config"
	"github.com/paysponge/spongewallet-go/internal/storage"
	"github.com/paysponge/spongewallet-go/internal/utils"
	"github.com/paysponge/spongewallet-go/tools"
)

func credentialStore() (*storage.FileStore, error) {
	cfg := config.NewConfig()
	cfg.LoadFromEnvironment()
	return storage.NewFileStore(cfg.CredentialsDir)
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := credentialStore()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if store.Load() == nil {
				fmt.Fprintln(out, "Not logged in.")
				return nil
			}
			if err := store.Delete(); err != nil {
				return err
			}
			fmt.Fprintln(out, "Logged out successfully.")
			fmt.Fprintf(out, "Removed credentials from %s\n", store.Path())
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show current authentication status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := credentialStore()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			creds := store.Load()
			if creds == nil {
				fmt.Fprintln(out, "Not logged in.")
				fmt.Fprintln(out, "Run `spongewallet login` to authenticate.")
				return nil
			}

			fmt.Fprintln(out, "Logged in as:")
			fmt.Fprintf(out, "  Agent ID: %s\n", creds.AgentID)
			if creds.AgentName != "" {
				fmt.Fprintf(out, "  Agent Name: %s\n", creds.AgentName)
			}
			fmt.Fprintf(out, "  API Key: %s...\n", utils.Truncate(creds.APIKey, 20))
			if creds.Testnet {
				fmt.Fprintln(out, "  Mode: Testnet only")
			}
			if creds.BaseURL != "" {
				fmt.Fprintf(out, "  API: %s\n", creds.BaseURL)
			}
			fmt.Fprintf(out, "  Credentials: %s\n", store.Path())
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "@spongewallet/sdk v%s\n", client.Version)
		},
	}
}

func newToolsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Print the LLM tool catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(cmd.OutOrStdout(), format, tools.Definitions())
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	return cmd
}

func newMCPCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Print an MCP server entry for the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewConfig()
			cfg.BaseURL = ""
			cfg.LoadFromEnvironment()

			store, err := storage.NewFileStore(cfg.CredentialsDir)
			if err != nil {
				return err
			}

			apiKey := cfg.APIKey
			baseURL := cfg.BaseURL
			if apiKey == "" {
				creds, err := store.Require()
				if err != nil {
					return err
				}
				apiKey = creds.APIKey
				if baseURL == "" {
					baseURL = creds.BaseURL
				}
			}

			entry := map[string]interface{}{
				"mcpServers": map[string]spongewallet.MCPConfig{
					"spongewallet": spongewallet.NewMCPConfig(apiKey, baseURL),
				},
			}
			return render(cmd.OutOrStdout(), format, entry)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	return cmd
}

func render(w io.Writer, format string, v interface{}) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q, use json or yaml", format)
	}
}
