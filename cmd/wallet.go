package cmd

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/cryptodevs/whitelist-dapp/internal/config"
	"github.com/cryptodevs/whitelist-dapp/internal/ui"
	"github.com/cryptodevs/whitelist-dapp/internal/wallet"
)

var (
	walletKeyFlag string
	walletQROut   string
	walletYes     bool
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage wallets",
}

var walletAddCmd = &cobra.Command{
	Use:   "add <name> [address]",
	Short: "Add a wallet",
	Long: `Add a signing wallet (--key, stored in the OS keychain) or a watch-only
address used by "whitelist status".`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		out := cmd.OutOrStdout()

		if walletKeyFlag != "" {
			ks, err := openKeystore()
			if err != nil {
				return err
			}
			w, err := newWalletManager(ks).AddWithKey(name, walletKeyFlag)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Success(fmt.Sprintf("Signing wallet %q added: %s", name, ui.Addr(w.Address))))
			fmt.Fprintln(out, ui.Hint("Set as default with: whitelist wallet use "+name))
			return nil
		}

		if len(args) < 2 {
			return fmt.Errorf("address required for watch-only wallet\n  Usage: whitelist wallet add <name> <address>\n  Or for signing: whitelist wallet add <name> --key <private-key>")
		}
		address := args[1]
		if !common.IsHexAddress(address) {
			return fmt.Errorf("invalid address %q", address)
		}
		address = common.HexToAddress(address).Hex()
		if err := newWalletManager(nil).Add(name, &wallet.Wallet{
			Address: address,
			Type:    wallet.TypeWatchOnly,
		}); err != nil {
			return err
		}
		fmt.Fprintln(out, ui.Success(fmt.Sprintf("Watch-only wallet %q added: %s", name, ui.Addr(address))))
		return nil
	},
}

var walletGenerateCmd = &cobra.Command{
	Use:   "generate <name>",
	Short: "Generate a new signing wallet",
	Long: `Generate a new EVM key pair and store the private key in the OS keychain.

Fund the address on the expected network before joining, e.g. with
"whitelist wallet qr <name>".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ks, err := openKeystore()
		if err != nil {
			return err
		}
		w, err := newWalletManager(ks).Generate(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.KeyValueBlock("New wallet", [][2]string{
			{"Name", w.Name},
			{"Address", w.Address},
			{"Key", "stored in keychain as " + w.KeyRef},
		}))
		fmt.Fprintln(out, ui.Hint("Set as default with: whitelist wallet use "+w.Name))
		return nil
	},
}

var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all wallets",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		wallets, err := newWalletManager(nil).List()
		if err != nil {
			return err
		}
		if len(wallets) == 0 {
			fmt.Fprintln(out, ui.Info("No wallets configured yet."))
			fmt.Fprintln(out, ui.Hint("Create one with: whitelist wallet generate deployer"))
			return nil
		}

		fmt.Fprintln(out, renderWallets(wallets, cfg.DefaultWallet))
		fmt.Fprintln(out, ui.Meta(fmt.Sprintf("%d wallet(s) configured", len(wallets))))
		return nil
	},
}

var walletUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the default wallet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := newWalletManager(nil).SetDefault(name); err != nil {
			return err
		}
		if err := updateConfig(func(c *config.Config) error { c.DefaultWallet = name; return nil }); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Default wallet set to %q.", name)))
		return nil
	},
}

var walletRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a wallet and its stored key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		out := cmd.OutOrStdout()

		w, err := newWalletManager(nil).Get(name)
		if err != nil {
			return err
		}
		if !walletYes && !ui.ConfirmDanger(fmt.Sprintf("Remove wallet %q?", name)) {
			fmt.Fprintln(out, ui.Meta("Cancelled."))
			return nil
		}

		var ks wallet.KeyStore
		if w.CanSign() {
			k, err := openKeystore()
			if err != nil {
				return err
			}
			ks = k
		}
		if err := newWalletManager(ks).Remove(name); err != nil {
			return err
		}
		err = updateConfig(func(c *config.Config) error {
			if c.DefaultWallet == name {
				c.DefaultWallet = ""
			}
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(out, ui.Success(fmt.Sprintf("Wallet %q removed.", name)))
		return nil
	},
}

var walletQRCmd = &cobra.Command{
	Use:   "qr [name]",
	Short: "Show a QR code for funding a wallet",
	Long: `Render the wallet address as a QR code with the network's chain id, so a
mobile wallet can send test ETH to it. --out writes a PNG instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		w, err := newWalletManager(nil).Resolve(name)
		if err != nil {
			return err
		}
		network, err := resolveNetwork()
		if err != nil {
			return err
		}

		uri := wallet.PaymentURI(w.Address, network.ChainID)
		out := cmd.OutOrStdout()
		if walletQROut != "" {
			if err := wallet.WriteQRPNG(walletQROut, uri, 256); err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Success("QR code written to "+walletQROut))
			return nil
		}

		qr, err := wallet.QRText(uri)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, qr)
		fmt.Fprintf(out, "  %s  %s\n", ui.Meta(w.Name), ui.Addr(w.Address))
		fmt.Fprintf(out, "  %s\n", ui.Meta(uri))
		if network.FaucetURL != "" {
			fmt.Fprintln(out, ui.Hint("Faucet: "+network.FaucetURL))
		}
		return nil
	},
}

// renderWallets draws the wallet table; def marks the configured default.
func renderWallets(wallets []*wallet.Wallet, def string) string {
	t := ui.NewTable([]ui.Column{
		{Title: "Name", Width: 16},
		{Title: "Address", Width: 42},
		{Title: "Type", Width: 10},
		{Title: "Default", Width: 7},
	})
	for _, w := range wallets {
		mark := ""
		if w.IsDefault || w.Name == def {
			mark = "✓"
		}
		t.AddRow(ui.Row{w.Name, w.Address, w.Type, mark})
	}
	return t.Render()
}

func init() {
	walletAddCmd.Flags().StringVar(&walletKeyFlag, "key", "", "private key for a signing wallet")
	walletRemoveCmd.Flags().BoolVarP(&walletYes, "yes", "y", false, "skip the confirmation prompt")
	walletQRCmd.Flags().StringVarP(&walletQROut, "out", "o", "", "write a PNG to this path")

	walletCmd.AddCommand(walletAddCmd, walletGenerateCmd, walletListCmd, walletUseCmd, walletRemoveCmd, walletQRCmd)
}
