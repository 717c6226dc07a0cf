package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/99designs/keyring"
	"github.com/spf13/cobra"

	"github.com/cryptodevs/whitelist-dapp/internal/config"
	"github.com/cryptodevs/whitelist-dapp/internal/dapp"
	"github.com/cryptodevs/whitelist-dapp/internal/ui"
)

var (
	joinContract string
	joinWallet   string
)

var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Join the whitelist without the interactive page",
	Long: `Connect the signing wallet, and join the whitelist if it has not joined yet.

The command waits until the transaction is mined. A reverted transaction
(for example because the whitelist is full) exits with status 1.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		backend, network, err := dial(ctx)
		if err != nil {
			return err
		}
		addr, err := resolveContract(joinContract, network)
		if err != nil {
			return err
		}
		if err := requireContract(ctx, backend, addr, network); err != nil {
			return err
		}

		client := dapp.NewClient(
			dapp.NewWalletConnector(backend, addr, walletUnlocker(joinWallet, keyring.TerminalPrompt)),
			cfg.ExpectedChainID,
			dapp.WithLogger(log),
			dapp.WithTimeouts(config.RPCCallTimeout, config.TxConfirmTimeout),
			dapp.WithNetworkName(expectedNetwork()),
		)
		defer client.Close()

		out := cmd.OutOrStdout()
		conn, err := client.Connect(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, ui.Info(fmt.Sprintf("Connected %s, %d have already joined the Whitelist", ui.Addr(conn.Address), conn.Count)))
		if conn.Joined {
			fmt.Fprintln(out, ui.Success(dapp.LabelThanks))
			return nil
		}

		warnIfUnfunded(ctx, out, backend, conn.Address, config.GasLimitJoin, network)

		hash, err := client.Submit(ctx)
		if err != nil {
			return err
		}
		spin := ui.NewSpinner("Waiting for " + ui.TruncateAddr(hash) + " to be mined")
		spin.Start()
		res, err := client.Await(ctx, hash)
		spin.Stop()
		if err != nil {
			return err
		}

		fmt.Fprintln(out, ui.Success(fmt.Sprintf("Joined in block %d", res.BlockNumber)))
		if url := network.TxURL(res.TxHash); url != "" {
			fmt.Fprintln(out, ui.Hint(url))
		}
		if res.CountErr == nil {
			fmt.Fprintln(out, ui.Meta(fmt.Sprintf("%d have already joined the Whitelist", res.Count)))
		}
		fmt.Fprintln(out, ui.Success(dapp.LabelThanks))
		return nil
	},
}

func init() {
	joinCmd.Flags().StringVarP(&joinContract, "contract", "c", "", "Whitelist contract address (default from config)")
	joinCmd.Flags().StringVarP(&joinWallet, "wallet", "w", "", "signing wallet (default wallet if empty)")
}
