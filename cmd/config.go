package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/cryptodevs/whitelist-dapp/internal/chain"
	"github.com/cryptodevs/whitelist-dapp/internal/config"
	"github.com/cryptodevs/whitelist-dapp/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the configuration after WHITELIST_* environment overrides and
global flags are applied.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.StyleTitle.Render("Current Configuration"))
		fmt.Fprintln(out, string(data))
		fmt.Fprintln(out, ui.Meta("Config directory: "+cfg.Dir()))
		if env != nil && env.PrivateKey != "" {
			fmt.Fprintln(out, ui.Warn("WHITELIST_PRIVATE_KEY is set; it signs instead of stored wallets."))
		}
		return nil
	},
}

var configSetContractCmd = &cobra.Command{
	Use:   "set-contract <address>",
	Short: "Set the Whitelist contract the client uses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !common.IsHexAddress(args[0]) {
			return fmt.Errorf("invalid contract address %q", args[0])
		}
		addr := common.HexToAddress(args[0]).Hex()
		if err := updateConfig(func(c *config.Config) error { c.ContractAddress = addr; return nil }); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("Contract set to "+ui.Addr(cfg.ContractAddress)))
		return nil
	},
}

var configSetNetworkCmd = &cobra.Command{
	Use:   "set-network <network>",
	Short: "Set the default network",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := chain.NewRegistry().GetByName(args[0])
		if err != nil {
			return fmt.Errorf("unknown network %q, run `whitelist network list`: %w", args[0], err)
		}
		if err := updateConfig(func(f *config.Config) error { f.Network = c.Name; return nil }); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Default network set to %q", c.Name)))
		return nil
	},
}

var configSetArtifactCmd = &cobra.Command{
	Use:   "set-artifact <path>",
	Short: "Set the artifact deploy reads the creation code from",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := updateConfig(func(c *config.Config) error { c.ArtifactPath = args[0]; return nil }); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("Artifact set to "+args[0]))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetContractCmd, configSetNetworkCmd, configSetArtifactCmd)
}
