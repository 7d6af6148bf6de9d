package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/paysponge/spongewallet-go/auth"
	"github.com/paysponge/spongewallet-go/client"
	"github.com/paysponge/spongewallet-go/config"
	"github.com/paysponge/spongewallet-go/internal/logger"
	"github.com/paysponge/spongewallet-go/internal/storage"
	"github.com/paysponge/spongewallet-go/internal/tui"
	"github.com/paysponge/spongewallet-go/models"
)

type loginFlags struct {
	testnet   bool
	noBrowser bool
	baseURL   string
	agentName string
	master    bool
}

func newLoginCmd() *cobra.Command {
	var flags loginFlags

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with SpongeWallet (opens browser)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runLogin(cmd, flags); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Login failed:", err.Error())
				return errReported
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&flags.testnet, "testnet", "t", false, "Use testnets only")
	cmd.Flags().BoolVar(&flags.noBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().StringVar(&flags.baseURL, "base-url", "", "Use custom API URL")
	cmd.Flags().StringVar(&flags.agentName, "agent-name", "", "Name for the agent created by this login")
	cmd.Flags().BoolVar(&flags.master, "master", false, "Request a master key instead of an agent key")

	return cmd
}

func runLogin(cmd *cobra.Command, flags loginFlags) error {
	cfg := config.NewConfig()
	if flags.baseURL != "" {
		cfg.BaseURL = flags.baseURL
	}
	cfg.Testnet = flags.testnet
	cfg.NoBrowser = flags.noBrowser
	cfg.AgentName = flags.agentName
	cfg.LoadFromEnvironment()
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := storage.NewFileStore(cfg.CredentialsDir)
	if err != nil {
		return err
	}

	keyType := models.KeyTypeAgent
	if flags.master {
		keyType = models.KeyTypeMaster
	}
	opts := auth.LoginOptions{
		Testnet:   cfg.Testnet,
		AgentName: cfg.AgentName,
		KeyType:   keyType,
		NoBrowser: cfg.NoBrowser,
	}
	if opts.AgentName == "" && keyType == models.KeyTypeAgent {
		opts.AgentName = config.DefaultAgentName
	}

	c := client.NewAPIClient(cfg)
	out := cmd.OutOrStdout()

	if !isTerminal(out) {
		flow := auth.NewDeviceFlow(c, store, auth.WithPresenter(auth.TextPresenter{Out: out}))
		_, err := flow.Run(cmd.Context(), opts)
		return err
	}

	// The login screen owns the terminal, so logs go to a file.
	debug, _ := cmd.Flags().GetBool("debug")
	if logPath, err := logger.InitFileOnly(store.Dir(), debug); err == nil {
		defer logger.Close()
		logger.Debug("Login started, logging to %s", logPath)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	monitor := tui.NewLoginMonitor()
	monitor.Start(cancel)

	flow := auth.NewDeviceFlow(c, store, auth.WithPresenter(monitor))
	_, err = flow.Run(ctx, opts)
	monitor.Finish(err)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
