package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/99designs/keyring"
	"go.uber.org/zap"

	"github.com/cryptodevs/whitelist-dapp/internal/chain"
	"github.com/cryptodevs/whitelist-dapp/internal/config"
	"github.com/cryptodevs/whitelist-dapp/internal/contract"
	"github.com/cryptodevs/whitelist-dapp/internal/rpc"
	"github.com/cryptodevs/whitelist-dapp/internal/wallet"
)

// probeTimeout bounds a single endpoint ping during selection.
const probeTimeout = 5 * time.Second

// resolveNetwork returns the configured network from the chain registry.
func resolveNetwork() (*chain.Chain, error) {
	c, err := chain.NewRegistry().GetByName(cfg.Network)
	if err != nil {
		return nil, fmt.Errorf("unknown network %q, run `whitelist network list`: %w", cfg.Network, err)
	}
	return c, nil
}

// rpcCandidates lists custom RPCs first, then the built-in ones.
func rpcCandidates(c *chain.Chain) []string {
	urls := append([]string{}, cfg.GetRPCs(c.Name)...)
	return append(urls, c.RPCs...)
}

// resolveRPC returns the pinned RPC URL, or selects one of the network's
// endpoints with the configured algorithm.
func resolveRPC(ctx context.Context, c *chain.Chain) (string, error) {
	if cfg.RPCURL != "" {
		return cfg.RPCURL, nil
	}
	algo, err := rpc.ParseAlgorithm(cfg.RPCAlgorithm)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, config.RPCSelectTimeout)
	defer cancel()

	url, err := rpc.NewSelector(algo, probeTimeout, log).Select(ctx, rpcCandidates(c))
	if err != nil {
		return "", fmt.Errorf("selecting RPC for %s: %w\n  Add one with: whitelist rpc add %s <url>", c.Name, err, c.Name)
	}
	return url, nil
}

// dial resolves the network and returns a client for it.
func dial(ctx context.Context) (*chain.EVMClient, *chain.Chain, error) {
	c, err := resolveNetwork()
	if err != nil {
		return nil, nil, err
	}
	url, err := resolveRPC(ctx, c)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("using rpc", zap.String("network", c.Name), zap.String("url", url))
	return c.NewClient(url), c, nil
}

// resolveContract returns the Whitelist address: flag, then config (and
// environment), then the latest deployment recorded for the network.
func resolveContract(flag string, c *chain.Chain) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if cfg.ContractAddress != "" {
		return cfg.ContractAddress, nil
	}
	reg := newContractRegistry()
	if err := reg.Load(); err != nil {
		return "", err
	}
	e, err := reg.Get(contractName, c.Name)
	if err != nil {
		if errors.Is(err, contract.ErrContractNotFound) {
			return "", fmt.Errorf("no Whitelist contract configured for %s\n  Deploy one with `whitelist deploy` or set WHITELIST_CONTRACT_ADDRESS", c.Name)
		}
		return "", err
	}
	return e.Address, nil
}

// updateConfig applies fn to the configuration file and then to the loaded
// configuration. The file is re-read first so environment and flag
// overrides are never persisted.
func updateConfig(fn func(*config.Config) error) error {
	file, err := config.Load(cfg.Dir())
	if err != nil {
		return err
	}
	if err := fn(file); err != nil {
		return err
	}
	if err := file.Save(); err != nil {
		return err
	}
	_ = fn(cfg)
	return nil
}

func newContractRegistry() *contract.Registry {
	return contract.NewRegistry(cfg.ContractsPath())
}

// newWalletManager opens the wallet store. ks may be nil for commands that
// never touch private keys.
func newWalletManager(ks wallet.KeyStore) *wallet.Manager {
	opts := []wallet.Option{wallet.WithStore(wallet.NewJSONStore(cfg.WalletsPath()))}
	if ks != nil {
		opts = append(opts, wallet.WithKeyStore(ks))
	}
	return wallet.NewManager(opts...)
}

// openKeystore opens the OS keychain, falling back to a file keyring that
// is unlocked with WHITELIST_KEYRING_PASSWORD or a terminal prompt.
func openKeystore() (*wallet.Keystore, error) {
	return openKeystoreWith(keyring.TerminalPrompt)
}

// openKeystoreWith is openKeystore with a custom fallback prompt.
func openKeystoreWith(prompt keyring.PromptFunc) (*wallet.Keystore, error) {
	if env != nil && env.KeyringPassword != "" {
		prompt = keyring.FixedStringPrompt(env.KeyringPassword)
	}
	return wallet.OpenKeystore(filepath.Join(cfg.Dir(), "keys"), prompt)
}

// resolveSigner returns the signer for write commands. WHITELIST_PRIVATE_KEY
// wins over stored wallets; otherwise the named (or default) signing wallet
// is unlocked from the keystore.
func resolveSigner(walletName string) (*wallet.Signer, error) {
	if env != nil && env.PrivateKey != "" {
		return wallet.NewKeySigner("env", env.PrivateKey)
	}

	mgr := newWalletManager(nil)
	if walletName == "" {
		walletName = cfg.DefaultWallet
	}
	w, err := mgr.Resolve(walletName)
	if err != nil {
		return nil, fmt.Errorf("%w\n  Create one with `whitelist wallet generate <name>` or set WHITELIST_PRIVATE_KEY", err)
	}
	if !w.CanSign() {
		return nil, fmt.Errorf("wallet %q is watch-only and cannot sign transactions\n  To add a signing wallet: whitelist wallet add <name> --key <private-key>", w.Name)
	}

	ks, err := openKeystore()
	if err != nil {
		return nil, err
	}
	return wallet.Unlock(w, ks)
}
