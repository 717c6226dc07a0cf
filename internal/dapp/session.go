package dapp

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cryptodevs/whitelist-dapp/internal/chain"
)

// Connector establishes wallet sessions. It is constructed once by the
// program and handed to the Client.
type Connector interface {
	Connect(ctx context.Context) (Provider, error)
}

// Provider is an open wallet session.
type Provider interface {
	ChainID(ctx context.Context) (int64, error)
	Address() string
	// Contract returns a signer-bound Whitelist handle on chainID.
	Contract(chainID int64) (Whitelist, error)
	Close() error
}

// Whitelist is the contract surface the client uses. *contract.Whitelist
// satisfies it.
type Whitelist interface {
	WhitelistedAddresses(ctx context.Context, addr string) (bool, error)
	NumAddressesWhitelisted(ctx context.Context) (uint8, error)
	AddAddressToWhitelist(ctx context.Context) (string, error)
	WaitMined(ctx context.Context, hash string) (*chain.TxReceipt, error)
}

// Session is an open, network-checked wallet connection.
type Session struct {
	ID       uuid.UUID
	Address  string
	ChainID  int64
	OpenedAt time.Time

	provider Provider
	contract Whitelist
}

func newSession(p Provider, chainID int64, wl Whitelist) *Session {
	return &Session{
		ID:       uuid.New(),
		Address:  p.Address(),
		ChainID:  chainID,
		OpenedAt: time.Now(),
		provider: p,
		contract: wl,
	}
}

// Close releases the provider.
func (s *Session) Close() error {
	if s == nil || s.provider == nil {
		return nil
	}
	return s.provider.Close()
}
