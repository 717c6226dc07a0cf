package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cryptodevs/whitelist-dapp/internal/config"
	"github.com/cryptodevs/whitelist-dapp/internal/logging"
	"github.com/cryptodevs/whitelist-dapp/internal/ui"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/cryptodevs/whitelist-dapp/cmd.Version=1.2.3" .
var Version = "0.1.0"

var (
	cfgDir      string
	cfg         *config.Config
	env         *config.Env
	log         *zap.Logger
	verbose     bool
	networkFlag string
	rpcFlag     string
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "whitelist",
	Short: "Deploy and join the Crypto Devs Whitelist",
	Long: `whitelist deploys the Crypto Devs Whitelist contract and runs a terminal
client for joining it.

  whitelist deploy     deploy the contract (max 10 addresses)
  whitelist app        open the interactive whitelist page
  whitelist status     print the whitelist count and your membership
  whitelist join       join the whitelist without the interactive page

Configuration lives in ~/.whitelist/config.json. Every setting can be
overridden with a WHITELIST_* environment variable, e.g.
WHITELIST_CONTRACT_ADDRESS or WHITELIST_PRIVATE_KEY.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

// setup loads the environment, the config file and the logger.
func setup() error {
	var err error
	env, err = config.LoadEnv()
	if err != nil {
		return err
	}
	dir := cfgDir
	if dir == "" {
		dir = env.ConfigDir
	}
	cfg, err = config.Load(dir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg.ApplyEnv(env)
	if networkFlag != "" {
		cfg.Network = networkFlag
	}
	if rpcFlag != "" {
		cfg.RPCURL = rpcFlag
	}

	// The app command replaces this with a file logger before the TUI starts.
	log, err = logging.New(verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	return nil
}

// Execute runs the root command. Any failure prints to stderr and exits 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Err(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", "", "config directory (default: ~/.whitelist)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVarP(&networkFlag, "network", "n", "", "network to use (default from config: goerli)")
	rootCmd.PersistentFlags().StringVar(&rpcFlag, "rpc", "", "RPC URL; skips endpoint selection")

	rootCmd.AddCommand(
		deployCmd,
		appCmd,
		statusCmd,
		joinCmd,
		walletCmd,
		contractCmd,
		networkCmd,
		rpcCmd,
		configCmd,
	)
}
