package cmd

import (
	"context"
	"fmt"
	"io"
	"math/big"

	"go.uber.org/zap"

	"github.com/cryptodevs/whitelist-dapp/internal/chain"
	"github.com/cryptodevs/whitelist-dapp/internal/ui"
)

type codeReader interface {
	GetCode(ctx context.Context, address string) (string, error)
}

type fundsReader interface {
	GetBalance(ctx context.Context, address string) (*chain.Balance, error)
	GasPrice(ctx context.Context) (*big.Int, error)
}

// requireContract fails when nothing is deployed at addr, e.g. an address
// recorded for another network.
func requireContract(ctx context.Context, backend codeReader, addr string, network *chain.Chain) error {
	code, err := backend.GetCode(ctx, addr)
	if err != nil {
		return fmt.Errorf("checking contract %s: %w", addr, err)
	}
	if code == "" || code == "0x" {
		return fmt.Errorf("no contract deployed at %s on %s\n  Deploy one with `whitelist deploy` or fix contract_address", addr, network.Name)
	}
	return nil
}

// warnIfUnfunded prints a warning to w when address cannot pay for gasLimit
// at the current gas price. It reports whether it warned. Lookup failures
// are logged and never block the caller.
func warnIfUnfunded(ctx context.Context, w io.Writer, backend fundsReader, address string, gasLimit uint64, network *chain.Chain) bool {
	bal, err := backend.GetBalance(ctx, address)
	if err != nil {
		log.Debug("balance check skipped", zap.String("address", address), zap.Error(err))
		return false
	}
	price, err := backend.GasPrice(ctx)
	if err != nil {
		log.Debug("balance check skipped", zap.String("address", address), zap.Error(err))
		return false
	}
	need := new(big.Int).Mul(price, new(big.Int).SetUint64(gasLimit))
	if bal.Wei.Cmp(need) >= 0 {
		return false
	}

	fmt.Fprintln(w, ui.Warn(fmt.Sprintf("%s holds %s %s; up to %s %s may be needed at %.2f gwei",
		ui.TruncateAddr(address), bal.ETH, network.NativeCurrency,
		chain.WeiToETH(need), network.NativeCurrency, chain.WeiToGwei(price))))
	if network.FaucetURL != "" {
		fmt.Fprintln(w, ui.Hint("Faucet: "+network.FaucetURL))
	}
	return true
}
