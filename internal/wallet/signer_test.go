package wallet

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPrivKeyHex = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testSignerAddr = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func dynamicTx() *types.Transaction {
	to := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	return types.NewTx(&types.DynamicFeeTx{
		ChainID:   big.NewInt(5),
		Nonce:     1,
		GasTipCap: big.NewInt(1_500_000_000),
		GasFeeCap: big.NewInt(30_000_000_000),
		Gas:       100_000,
		To:        &to,
		Data:      []byte{0x4d, 0xd6, 0x1a, 0x55},
	})
}

// recoverSender decodes raw bytes and returns the recovered signer.
func recoverSender(t *testing.T, raw []byte, chainID *big.Int) string {
	t.Helper()
	var tx types.Transaction
	require.NoError(t, tx.UnmarshalBinary(raw))
	from, err := types.Sender(types.NewLondonSigner(chainID), &tx)
	require.NoError(t, err)
	return from.Hex()
}

// ---------------------------------------------------------------------------
// NewKeySigner
// ---------------------------------------------------------------------------

func TestKeySigner(t *testing.T) {
	s, err := NewKeySigner("env", "0x"+testPrivKeyHex)
	require.NoError(t, err)
	assert.Equal(t, testSignerAddr, s.Address())

	chainID := big.NewInt(31337)
	raw, err := s.SignTx(dynamicTx(), chainID)
	require.NoError(t, err)
	assert.Equal(t, testSignerAddr, recoverSender(t, raw, chainID))
}

func TestKeySignerInvalid(t *testing.T) {
	_, err := NewKeySigner("env", "nope")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

// ---------------------------------------------------------------------------
// Unlock
// ---------------------------------------------------------------------------

func TestUnlock(t *testing.T) {
	ks := NewInMemoryKeystore()
	ref, _ := ks.Store("w", testPrivKeyHex)

	s, err := Unlock(&Wallet{Name: "w", Address: testSignerAddr, Type: TypeSigning, KeyRef: ref}, ks)
	require.NoError(t, err)
	assert.Equal(t, testSignerAddr, s.Address())

	// The key stays usable after it is removed from the store.
	require.NoError(t, ks.Delete(ref))
	_, err = s.SignTx(dynamicTx(), big.NewInt(5))
	assert.NoError(t, err)
}

func TestUnlockAddressMismatch(t *testing.T) {
	ks := NewInMemoryKeystore()
	ref, _ := ks.Store("w", testPrivKeyHex)

	_, err := Unlock(&Wallet{Name: "w", Address: "0x0000000000000000000000000000000000000001", Type: TypeSigning, KeyRef: ref}, ks)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")
}

func TestUnlockWatchOnly(t *testing.T) {
	_, err := Unlock(&Wallet{Name: "w", Type: TypeWatchOnly}, NewInMemoryKeystore())
	assert.Error(t, err)
}

func TestUnlockSignsWithStoredKey(t *testing.T) {
	ks := NewInMemoryKeystore()
	ref, err := ks.Store("w", testPrivKeyHex)
	require.NoError(t, err)

	s, err := Unlock(&Wallet{Name: "w", Address: testSignerAddr, Type: TypeSigning, KeyRef: ref}, ks)
	require.NoError(t, err)
	assert.Equal(t, "w", s.Name())

	chainID := big.NewInt(5)
	raw, err := s.SignTx(dynamicTx(), chainID)
	require.NoError(t, err)
	assert.Equal(t, testSignerAddr, recoverSender(t, raw, chainID))
}

func TestUnlockMissingKey(t *testing.T) {
	_, err := Unlock(&Wallet{Name: "w", Address: testSignerAddr, Type: TypeSigning, KeyRef: "whitelist.w"}, NewInMemoryKeystore())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unlocking w")
}

func TestUnlockCorruptKey(t *testing.T) {
	ks := NewInMemoryKeystore()
	ref, _ := ks.Store("w", "zz")

	_, err := Unlock(&Wallet{Name: "w", Address: testSignerAddr, Type: TypeSigning, KeyRef: ref}, ks)
	assert.ErrorIs(t, err, ErrInvalidKey)
}
