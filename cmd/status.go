package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cryptodevs/whitelist-dapp/internal/config"
	"github.com/cryptodevs/whitelist-dapp/internal/contract"
	"github.com/cryptodevs/whitelist-dapp/internal/ui"
	"github.com/cryptodevs/whitelist-dapp/internal/wallet"
)

var (
	statusContract string
	statusAddress  string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the whitelist count and membership",
	Long: `Read the Whitelist contract without signing anything.

Membership is checked for --address, or for the default wallet when the flag
is omitted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), config.RPCCallTimeout+config.RPCSelectTimeout)
		defer cancel()

		backend, network, err := dial(ctx)
		if err != nil {
			return err
		}
		addr, err := resolveContract(statusContract, network)
		if err != nil {
			return err
		}
		if err := requireContract(ctx, backend, addr, network); err != nil {
			return err
		}
		wl, err := contract.NewWhitelist(backend, addr, nil, network.ChainID)
		if err != nil {
			return err
		}
		member := statusMember()

		var (
			chainID  int64
			count    uint8
			capacity uint8
			joined   bool
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) { chainID, err = backend.ChainID(gctx); return err })
		g.Go(func() (err error) { count, err = wl.NumAddressesWhitelisted(gctx); return err })
		g.Go(func() (err error) { capacity, err = wl.MaxWhitelistedAddresses(gctx); return err })
		if member != "" {
			g.Go(func() (err error) { joined, err = wl.WhitelistedAddresses(gctx, member); return err })
		}
		if err := g.Wait(); err != nil {
			return fmt.Errorf("reading whitelist: %w", err)
		}

		pairs := [][2]string{
			{"Network", fmt.Sprintf("%s (%d)", network.DisplayName, chainID)},
			{"Contract", wl.Address()},
			{"Joined", fmt.Sprintf("%d / %d", count, capacity)},
		}
		if member != "" {
			state := "no"
			if joined {
				state = "yes"
			}
			pairs = append(pairs, [2]string{"Member " + ui.TruncateAddr(member), state})
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.KeyValueBlock("Crypto Devs Whitelist", pairs))

		if count >= capacity {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn("The whitelist is full."))
		}
		if chainID != cfg.ExpectedChainID {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn(fmt.Sprintf("The client expects chain %d; `whitelist app` will ask you to switch.", cfg.ExpectedChainID)))
		}
		return nil
	},
}

// statusMember picks the address whose membership is shown.
func statusMember() string {
	if statusAddress != "" {
		return statusAddress
	}
	if env != nil && env.PrivateKey != "" {
		if addr, err := wallet.AddressFromKey(env.PrivateKey); err == nil {
			return addr
		}
	}
	if w, err := newWalletManager(nil).Resolve(cfg.DefaultWallet); err == nil {
		return w.Address
	}
	return ""
}

func init() {
	statusCmd.Flags().StringVarP(&statusContract, "contract", "c", "", "Whitelist contract address (default from config)")
	statusCmd.Flags().StringVarP(&statusAddress, "address", "a", "", "address to check (default wallet if empty)")
}
