package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cryptodevs/whitelist-dapp/internal/contract"
	"github.com/cryptodevs/whitelist-dapp/internal/ui"
)

var contractABIFile string

var contractCmd = &cobra.Command{
	Use:   "contract",
	Short: "Inspect deployed contracts",
}

// ── contract list ─────────────────────────────────────────────────────────────

var contractListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded deployments",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := newContractRegistry()
		if err := reg.Load(); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		entries := reg.All()
		if len(entries) == 0 {
			fmt.Fprintln(out, ui.Info("No deployments recorded yet."))
			fmt.Fprintln(out, ui.Hint("Deploy with: whitelist deploy"))
			return nil
		}

		t := ui.NewTable([]ui.Column{
			{Title: "Name", Width: 10},
			{Title: "Network", Width: 10},
			{Title: "Address", Width: 42},
			{Title: "Block", Width: 10},
			{Title: "Deployed", Width: 20},
		})
		for _, e := range entries {
			t.AddRow(ui.Row{e.Name, e.Network, e.Address, fmt.Sprintf("%d", e.BlockNumber), e.DeployedAt})
		}
		fmt.Fprintln(out, t.Render())
		if cfg.ContractAddress != "" {
			fmt.Fprintln(out, ui.Meta("Configured contract: "+cfg.ContractAddress))
		}
		return nil
	},
}

// ── contract forget ───────────────────────────────────────────────────────────

var contractForgetCmd = &cobra.Command{
	Use:   "forget <network>",
	Short: "Drop the recorded deployment for a network",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := newContractRegistry()
		if err := reg.Load(); err != nil {
			return err
		}
		if err := reg.Remove(contractName, args[0]); err != nil {
			return err
		}
		if err := reg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Forgot the %s deployment on %s.", contractName, args[0])))
		return nil
	},
}

// ── contract functions ────────────────────────────────────────────────────────

var contractFunctionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List the Whitelist ABI functions and selectors",
	Long: `List the functions of the built-in Whitelist ABI, or of --abi <file>
(a raw ABI array or a Hardhat/Foundry artifact), with their 4-byte selectors.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var entries []contract.ABIEntry
		if contractABIFile != "" {
			var err error
			entries, err = contract.LoadFromArtifact(contractABIFile)
			if err != nil {
				return err
			}
		} else {
			b, ok := contract.GetBuiltin(contract.WhitelistID)
			if !ok {
				return fmt.Errorf("built-in %q not registered", contract.WhitelistID)
			}
			entries = b.ABI
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderFunctions(entries))
		return nil
	},
}

func renderFunctions(entries []contract.ABIEntry) string {
	t := ui.NewTable([]ui.Column{
		{Title: "Selector", Width: 10},
		{Title: "Kind", Width: 5},
		{Title: "Function", Width: 36},
		{Title: "Returns", Width: 10},
	})
	for _, fn := range contract.Functions(entries) {
		kind := "write"
		if fn.IsReadFunction() {
			kind = "read"
		}
		t.AddRow(ui.Row{fn.Selector(), kind, fn.Name + "(" + formatParams(fn.Inputs) + ")", formatOutputs(fn.Outputs)})
	}
	return t.Render()
}

// formatParams returns a comma-separated string of "type name" pairs.
func formatParams(params []contract.ABIParam) string {
	parts := make([]string, len(params))
	for i, p := range params {
		if p.Name != "" {
			parts[i] = p.Type + " " + p.Name
		} else {
			parts[i] = p.Type
		}
	}
	return strings.Join(parts, ", ")
}

// formatOutputs returns a comma-separated list of output types.
func formatOutputs(params []contract.ABIParam) string {
	types := make([]string, len(params))
	for i, p := range params {
		types[i] = p.Type
	}
	return strings.Join(types, ", ")
}

func init() {
	contractFunctionsCmd.Flags().StringVar(&contractABIFile, "abi", "", "ABI or artifact file (default: built-in Whitelist ABI)")
	contractCmd.AddCommand(contractListCmd, contractForgetCmd, contractFunctionsCmd)
}
