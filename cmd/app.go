package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/99designs/keyring"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cryptodevs/whitelist-dapp/internal/chain"
	"github.com/cryptodevs/whitelist-dapp/internal/config"
	"github.com/cryptodevs/whitelist-dapp/internal/contract"
	"github.com/cryptodevs/whitelist-dapp/internal/dapp"
	"github.com/cryptodevs/whitelist-dapp/internal/logging"
	"github.com/cryptodevs/whitelist-dapp/internal/ui"
	"github.com/cryptodevs/whitelist-dapp/internal/wallet"
)

var (
	appContract string
	appWallet   string
)

// errKeyringLocked is returned instead of prompting on the terminal while
// the full-screen page owns it.
var errKeyringLocked = errors.New("file keyring is locked; set WHITELIST_KEYRING_PASSWORD")

var appCmd = &cobra.Command{
	Use:   "app",
	Short: "Open the interactive whitelist page",
	Long: `Open the Crypto Devs whitelist page in the terminal.

Press enter to connect your wallet, then enter again to join the whitelist.
The wallet must be on the expected network (Goerli, chain 5, by default).

Logs are written to ~/.whitelist/whitelist.log so they never draw over the page.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		fileLog, err := logging.NewFile(cfg.LogPath(), verbose)
		if err != nil {
			return err
		}
		log = fileLog

		backend, network, err := dial(ctx)
		if err != nil {
			return err
		}
		addr, err := resolveContract(appContract, network)
		if err != nil {
			return err
		}
		if err := requireContract(ctx, backend, addr, network); err != nil {
			return err
		}

		expected := expectedNetwork()
		connector := dapp.NewWalletConnector(backend, addr, walletUnlocker(appWallet, lockedPrompt))
		client := dapp.NewClient(connector, cfg.ExpectedChainID,
			dapp.WithLogger(log),
			dapp.WithTimeouts(config.RPCCallTimeout, config.TxConfirmTimeout),
			dapp.WithNetworkName(expected),
		)
		defer client.Close()

		log.Info("starting whitelist page",
			zap.String("network", network.Name),
			zap.String("rpc", backend.URL()),
			zap.String("contract", addr),
			zap.Int64("expectedChainID", cfg.ExpectedChainID),
		)

		model := ui.NewWhitelistModel(ctx, client, expected, addr)
		if _, err := ui.NewWhitelistProgram(model).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("running whitelist page: %w", err)
		}
		return nil
	},
}

// expectedNetwork names the chain the client insists on, e.g. "goerli".
func expectedNetwork() string {
	c, err := chain.NewRegistry().GetByChainID(cfg.ExpectedChainID)
	if err != nil {
		return ""
	}
	return c.Name
}

// lockedPrompt refuses to ask for the file keyring password.
func lockedPrompt(string) (string, error) { return "", errKeyringLocked }

// walletUnlocker resolves and unlocks the signing wallet when the user
// connects, so a missing or locked wallet is reported as a rejected
// connection. prompt unlocks a file keyring.
func walletUnlocker(name string, prompt keyring.PromptFunc) dapp.UnlockFunc {
	return func(ctx context.Context) (contract.TxSigner, error) {
		if env != nil && env.PrivateKey != "" {
			s, err := wallet.NewKeySigner("env", env.PrivateKey)
			if err != nil {
				return nil, err
			}
			return s, nil
		}

		n := name
		if n == "" {
			n = cfg.DefaultWallet
		}
		w, err := newWalletManager(nil).Resolve(n)
		if err != nil {
			return nil, err
		}
		ks, err := openKeystoreWith(prompt)
		if err != nil {
			return nil, err
		}
		s, err := wallet.Unlock(w, ks)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

func init() {
	appCmd.Flags().StringVarP(&appContract, "contract", "c", "", "Whitelist contract address (default from config)")
	appCmd.Flags().StringVarP(&appWallet, "wallet", "w", "", "signing wallet (default wallet if empty)")
}
