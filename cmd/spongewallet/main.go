package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/paysponge/spongewallet-go/client"
	"github.com/paysponge/spongewallet-go/internal/logger"
	"github.com/paysponge/spongewallet-go/internal/utils"
)

// errReported marks failures whose message was already printed.
var errReported = errors.New("reported")

func newRootCmd() *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "spongewallet",
		Short: "CLI for managing agent wallets",
		Long: `spongewallet manages SpongeWallet agent credentials.

Set SPONGE_API_KEY to skip login entirely.`,
		Version:       client.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(debug)
		},
	}
	rootCmd.SetVersionTemplate("@spongewallet/sdk v{{.Version}}\n")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newToolsCmd())
	rootCmd.AddCommand(newMCPCmd())

	return rootCmd
}

func main() {
	utils.LoadEnvironment()

	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
