package wallet

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// GenerateKey creates a new secp256k1 key and returns it hex encoded
// (no 0x prefix) with its checksummed address.
func GenerateKey() (hexKey, address string, err error) {
	priv, err := crypto.GenerateKey()
	if err != nil {
		return "", "", fmt.Errorf("generating key: %w", err)
	}
	return hex.EncodeToString(crypto.FromECDSA(priv)), crypto.PubkeyToAddress(priv.PublicKey).Hex(), nil
}

// ParsePrivateKey accepts a hex key with or without 0x and surrounding
// whitespace.
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	priv, err := crypto.HexToECDSA(normaliseHexKey(hexKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return priv, nil
}

// AddressFromKey derives the checksummed address of a hex private key.
func AddressFromKey(hexKey string) (string, error) {
	priv, err := ParsePrivateKey(hexKey)
	if err != nil {
		return "", err
	}
	return crypto.PubkeyToAddress(priv.PublicKey).Hex(), nil
}

func normaliseHexKey(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		return s[2:]
	}
	return s
}
