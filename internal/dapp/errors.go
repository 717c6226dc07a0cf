package dapp

import (
	"errors"
	"fmt"

	"github.com/cryptodevs/whitelist-dapp/internal/chain"
)

// Kind classifies client failures so the view can decide how to surface
// each of them.
type Kind int

const (
	KindRPC Kind = iota
	KindNetworkMismatch
	KindWalletRejected
	KindReverted
	KindNotConnected
	KindNoContract
)

func (k Kind) String() string {
	switch k {
	case KindNetworkMismatch:
		return "network mismatch"
	case KindWalletRejected:
		return "wallet rejected"
	case KindReverted:
		return "reverted"
	case KindNotConnected:
		return "not connected"
	case KindNoContract:
		return "no contract"
	default:
		return "rpc"
	}
}

var (
	// ErrWrongNetwork is wrapped by connect failures caused by the wallet
	// being on another chain.
	ErrWrongNetwork = errors.New("wrong network")
	// ErrRejected is returned by connectors when the user declines a
	// request or the wallet cannot be unlocked.
	ErrRejected = errors.New("request rejected by wallet")
	// ErrNotConnected is returned by operations that need a session.
	ErrNotConnected = errors.New("wallet not connected")
	// ErrNoContract is returned when no Whitelist address is configured.
	ErrNoContract = errors.New("no Whitelist contract address configured")
)

// Error is the typed failure returned by every Client operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or KindRPC for errors that did not come
// from a Client.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindRPC
}

// classify wraps err into an *Error for op. Already classified errors keep
// their kind.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	kind := KindRPC
	switch {
	case errors.Is(err, ErrWrongNetwork):
		kind = KindNetworkMismatch
	case errors.Is(err, ErrRejected):
		kind = KindWalletRejected
	case errors.Is(err, chain.ErrReverted):
		kind = KindReverted
	case errors.Is(err, ErrNotConnected):
		kind = KindNotConnected
	case errors.Is(err, ErrNoContract):
		kind = KindNoContract
	}
	return &Error{Kind: kind, Op: op, Err: err}
}
