package dapp

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cryptodevs/whitelist-dapp/internal/contract"
)

// UnlockFunc yields the signer a session acts as. Returning an error that
// wraps ErrRejected reports a declined or locked wallet.
type UnlockFunc func(ctx context.Context) (contract.TxSigner, error)

// WalletConnector connects local signing wallets to one RPC backend and
// one deployed Whitelist contract.
type WalletConnector struct {
	backend      contract.Backend
	contractAddr string
	unlock       UnlockFunc
}

// NewWalletConnector returns a connector. Nothing is unlocked until Connect.
func NewWalletConnector(backend contract.Backend, contractAddr string, unlock UnlockFunc) *WalletConnector {
	return &WalletConnector{backend: backend, contractAddr: contractAddr, unlock: unlock}
}

// Connect unlocks the wallet and opens a provider.
func (w *WalletConnector) Connect(ctx context.Context) (Provider, error) {
	if w.contractAddr == "" {
		return nil, ErrNoContract
	}
	signer, err := w.unlock(ctx)
	if err != nil {
		if errors.Is(err, ErrRejected) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrRejected, err)
	}
	return &walletProvider{backend: w.backend, contractAddr: w.contractAddr, signer: signer}, nil
}

type walletProvider struct {
	backend      contract.Backend
	contractAddr string

	mu     sync.Mutex
	signer contract.TxSigner
}

func (p *walletProvider) ChainID(ctx context.Context) (int64, error) {
	return p.backend.ChainID(ctx)
}

func (p *walletProvider) Address() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.signer == nil {
		return ""
	}
	return p.signer.Address()
}

func (p *walletProvider) Contract(chainID int64) (Whitelist, error) {
	p.mu.Lock()
	signer := p.signer
	p.mu.Unlock()
	if signer == nil {
		return nil, ErrNotConnected
	}
	return contract.NewWhitelist(p.backend, p.contractAddr, signer, chainID)
}

// Close forgets the unlocked signer.
func (p *walletProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.signer = nil
	return nil
}
