package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cryptodevs/whitelist-dapp/internal/chain"
	"github.com/cryptodevs/whitelist-dapp/internal/config"
	"github.com/cryptodevs/whitelist-dapp/internal/rpc"
	"github.com/cryptodevs/whitelist-dapp/internal/ui"
)

var rpcCmd = &cobra.Command{
	Use:   "rpc",
	Short: "Manage RPC endpoints",
}

var rpcAddCmd = &cobra.Command{
	Use:   "add <network> <url>",
	Short: "Add a custom RPC URL for a network",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, url := args[0], args[1]
		if _, err := chain.NewRegistry().GetByName(name); err != nil {
			return fmt.Errorf("unknown network %q: %w", name, err)
		}
		if err := updateConfig(func(c *config.Config) error { return c.AddRPC(name, url) }); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Added RPC for %s: %s", ui.ChainName(name), url)))
		return nil
	},
}

var rpcRemoveCmd = &cobra.Command{
	Use:   "remove <network> <url>",
	Short: "Remove a custom RPC URL",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, url := args[0], args[1]
		if err := updateConfig(func(c *config.Config) error { return c.RemoveRPC(name, url) }); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Removed RPC for %s: %s", name, url)))
		return nil
	},
}

var rpcListCmd = &cobra.Command{
	Use:   "list [network]",
	Short: "List the RPCs of a network",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := networkArg(args)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.StyleTitle.Render("RPCs for "+c.DisplayName))
		if custom := cfg.GetRPCs(c.Name); len(custom) > 0 {
			fmt.Fprintln(out, ui.StyleHeader.Render("Custom:"))
			for _, u := range custom {
				fmt.Fprintf(out, "  %s\n", u)
			}
		}
		fmt.Fprintln(out, ui.StyleHeader.Render("Built-in:"))
		for _, u := range c.RPCs {
			fmt.Fprintf(out, "  %s\n", u)
		}
		if cfg.RPCURL != "" {
			fmt.Fprintln(out, ui.Warn("Pinned RPC overrides the lists: "+cfg.RPCURL))
		}
		return nil
	},
}

var rpcBenchmarkCmd = &cobra.Command{
	Use:   "benchmark [network]",
	Short: "Ping every RPC of a network and show which one would be used",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := networkArg(args)
		if err != nil {
			return err
		}
		urls := rpcCandidates(c)
		if len(urls) == 0 {
			return fmt.Errorf("no RPCs configured for %s", c.Name)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), config.RPCSelectTimeout)
		defer cancel()

		spin := ui.NewSpinner(fmt.Sprintf("Benchmarking %d %s RPCs", len(urls), c.DisplayName))
		spin.Start()
		endpoints := rpc.ProbeAll(ctx, urls, probeTimeout)
		spin.Stop()

		t := ui.NewTable([]ui.Column{
			{Title: "RPC URL", Width: 44},
			{Title: "Latency", Width: 9},
			{Title: "Block #", Width: 12},
			{Title: "Status", Width: 8},
		})
		for _, e := range endpoints {
			latency, block, status := "-", "-", "down"
			if e.Healthy {
				latency = fmt.Sprintf("%dms", e.Latency.Milliseconds())
				block = fmt.Sprintf("%d", e.BlockNumber)
				status = "healthy"
			}
			t.AddRow(ui.Row{e.URL, latency, block, status})
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, t.Render())

		algo, err := rpc.ParseAlgorithm(cfg.RPCAlgorithm)
		if err != nil {
			return err
		}
		winner, err := rpc.NewPicker(algo).Pick(endpoints)
		if err != nil {
			fmt.Fprintln(out, ui.Err(err.Error()))
			return nil
		}
		fmt.Fprintln(out, ui.Success(fmt.Sprintf("%s would use %s", algo, winner.URL)))
		return nil
	},
}

var rpcAlgorithmCmd = &cobra.Command{
	Use:   "algorithm <fastest|round-robin|failover>",
	Short: "Set the RPC selection algorithm",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		algo, err := rpc.ParseAlgorithm(args[0])
		if err != nil {
			return err
		}
		if err := updateConfig(func(c *config.Config) error { c.RPCAlgorithm = string(algo); return nil }); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("RPC algorithm set to %q", algo)))
		return nil
	},
}

// networkArg returns the network named in args, or the configured one.
func networkArg(args []string) (*chain.Chain, error) {
	if len(args) == 0 {
		return resolveNetwork()
	}
	c, err := chain.NewRegistry().GetByName(args[0])
	if err != nil {
		return nil, fmt.Errorf("unknown network %q: %w", args[0], err)
	}
	return c, nil
}

func init() {
	rpcCmd.AddCommand(rpcAddCmd, rpcRemoveCmd, rpcListCmd, rpcBenchmarkCmd, rpcAlgorithmCmd)
}
