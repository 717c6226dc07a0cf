package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cryptodevs/whitelist-dapp/internal/chain"
	"github.com/cryptodevs/whitelist-dapp/internal/config"
	"github.com/cryptodevs/whitelist-dapp/internal/ui"
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Manage networks",
}

var networkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported networks",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := chain.NewRegistry()
		t := ui.NewTable([]ui.Column{
			{Title: "Name", Width: 10},
			{Title: "Display", Width: 16},
			{Title: "Chain ID", Width: 10},
			{Title: "Currency", Width: 8},
			{Title: "RPCs", Width: 4},
			{Title: "", Width: 9},
		})
		for _, c := range reg.All() {
			mark := ""
			switch {
			case c.Name == cfg.Network:
				mark = "selected"
			case c.ChainID == cfg.ExpectedChainID:
				mark = "expected"
			}
			t.AddRow(ui.Row{
				c.Name,
				c.DisplayName,
				fmt.Sprintf("%d", c.ChainID),
				c.NativeCurrency,
				fmt.Sprintf("%d", len(rpcCandidates(&c))),
				mark,
			})
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, t.Render())
		fmt.Fprintln(out, ui.Meta(fmt.Sprintf("The whitelist client expects chain %d.", cfg.ExpectedChainID)))
		return nil
	},
}

var networkUseCmd = &cobra.Command{
	Use:   "use <network>",
	Short: "Set the default network",
	Long: `Set the network commands talk to and persist it to config.

With --expect the client's expected chain id is moved to that network too,
e.g. to run the whole flow against a local Hardhat node:

  whitelist network use hardhat --expect`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := chain.NewRegistry().GetByName(args[0])
		if err != nil {
			return fmt.Errorf("unknown network %q, run `whitelist network list`: %w", args[0], err)
		}
		expect, _ := cmd.Flags().GetBool("expect")
		err = updateConfig(func(f *config.Config) error {
			f.Network = c.Name
			if expect {
				f.ExpectedChainID = c.ChainID
			}
			return nil
		})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.Success("Default network set to "+ui.ChainName(c.DisplayName)))
		if expect {
			fmt.Fprintln(out, ui.Success(fmt.Sprintf("Expected chain id set to %d", c.ChainID)))
		}
		return nil
	},
}

func init() {
	networkUseCmd.Flags().Bool("expect", false, "also make this the chain the client expects")
	networkCmd.AddCommand(networkListCmd, networkUseCmd)
}
