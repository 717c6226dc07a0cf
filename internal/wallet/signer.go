package wallet

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer signs EVM transactions for a signing wallet.
type Signer struct {
	name    string
	address string
	key     *ecdsa.PrivateKey
}

// NewKeySigner creates a signer from a raw hex key that is never persisted,
// e.g. one supplied through WHITELIST_PRIVATE_KEY.
func NewKeySigner(name, hexKey string) (*Signer, error) {
	priv, err := ParsePrivateKey(hexKey)
	if err != nil {
		return nil, err
	}
	return &Signer{
		name:    name,
		address: crypto.PubkeyToAddress(priv.PublicKey).Hex(),
		key:     priv,
	}, nil
}

// SignTx signs an EVM transaction and returns the raw signed bytes.
func (s *Signer) SignTx(tx *types.Transaction, chainID *big.Int) ([]byte, error) {
	signed, err := types.SignTx(tx, types.NewLondonSigner(chainID), s.key)
	if err != nil {
		return nil, fmt.Errorf("signing transaction: %w", err)
	}

	raw, err := signed.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("marshaling signed tx: %w", err)
	}
	return raw, nil
}

// Address returns the signer's checksummed address.
func (s *Signer) Address() string { return s.address }

// Name returns the wallet name the signer was built from.
func (s *Signer) Name() string { return s.name }

// Unlock reads w's key once and returns a signer holding it in memory for
// the rest of the session.
func Unlock(w *Wallet, ks KeyStore) (*Signer, error) {
	if !w.CanSign() {
		return nil, fmt.Errorf("wallet %q is watch-only and cannot sign", w.Name)
	}
	hexKey, err := ks.Retrieve(w.KeyRef)
	if err != nil {
		return nil, fmt.Errorf("unlocking %s: %w", w.Name, err)
	}
	s, err := NewKeySigner(w.Name, hexKey)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(s.Address(), w.Address) {
		return nil, fmt.Errorf("stored key for %s does not match address %s", w.Name, w.Address)
	}
	return s, nil
}
