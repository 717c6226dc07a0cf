package contract

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/cryptodevs/whitelist-dapp/internal/chain"
	"github.com/cryptodevs/whitelist-dapp/internal/config"
)

// ErrReadOnly is returned when a write is attempted on a handle without a signer.
var ErrReadOnly = errors.New("contract handle has no signer")

// Whitelist is a typed handle on a deployed Whitelist contract.
type Whitelist struct {
	address string
	backend Backend
	caller  *Caller
	sender  *Sender
}

// NewWhitelist binds to address. signer may be nil for a read-only handle.
func NewWhitelist(backend Backend, address string, signer TxSigner, chainID int64) (*Whitelist, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid contract address %q", address)
	}
	caller, err := NewCaller(backend, whitelistABI)
	if err != nil {
		return nil, err
	}
	w := &Whitelist{
		address: common.HexToAddress(address).Hex(),
		backend: backend,
		caller:  caller,
	}
	if signer != nil {
		w.sender = NewSender(backend, signer, big.NewInt(chainID), config.GasLimitJoin)
	}
	return w, nil
}

// Address returns the checksummed contract address.
func (w *Whitelist) Address() string { return w.address }

// NumAddressesWhitelisted returns how many addresses have joined.
func (w *Whitelist) NumAddressesWhitelisted(ctx context.Context) (uint8, error) {
	return w.callUint8(ctx, "numAddressesWhitelisted")
}

// MaxWhitelistedAddresses returns the capacity fixed at deployment.
func (w *Whitelist) MaxWhitelistedAddresses(ctx context.Context) (uint8, error) {
	return w.callUint8(ctx, "maxWhitelistedAddresses")
}

// WhitelistedAddresses reports whether addr has joined.
func (w *Whitelist) WhitelistedAddresses(ctx context.Context, addr string) (bool, error) {
	if !common.IsHexAddress(addr) {
		return false, fmt.Errorf("invalid address %q", addr)
	}
	out, err := w.caller.Call(ctx, w.address, "whitelistedAddresses", common.HexToAddress(addr))
	if err != nil {
		return false, err
	}
	joined, ok := out[0].(bool)
	if !ok {
		return false, fmt.Errorf("whitelistedAddresses: unexpected output %T", out[0])
	}
	return joined, nil
}

// AddAddressToWhitelist submits a join for the signer's address and returns
// the transaction hash without waiting for it to be mined.
func (w *Whitelist) AddAddressToWhitelist(ctx context.Context) (string, error) {
	if w.sender == nil {
		return "", ErrReadOnly
	}
	data, err := w.caller.abi.Pack("addAddressToWhitelist")
	if err != nil {
		return "", fmt.Errorf("encoding call: %w", err)
	}
	return w.sender.Transact(ctx, w.address, data)
}

// WaitMined blocks until hash is mined. A reverted receipt is returned
// together with an error wrapping chain.ErrReverted.
func (w *Whitelist) WaitMined(ctx context.Context, hash string) (*chain.TxReceipt, error) {
	return w.backend.WaitForReceipt(ctx, hash, config.TxConfirmTimeout)
}

func (w *Whitelist) callUint8(ctx context.Context, method string) (uint8, error) {
	out, err := w.caller.Call(ctx, w.address, method)
	if err != nil {
		return 0, err
	}
	n, ok := out[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("%s: unexpected output %T", method, out[0])
	}
	return n, nil
}
