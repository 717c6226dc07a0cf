package wallet_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptodevs/whitelist-dapp/internal/wallet"
)

// Well-known Hardhat test account #0. Never fund on a public network.
const (
	hardhatKey  = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	hardhatAddr = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func TestAddWatchOnlyWallet(t *testing.T) {
	mgr := wallet.NewManager(wallet.WithInMemoryStore())

	err := mgr.Add("mywallet", &wallet.Wallet{
		Address: "0x1234567890abcdef1234567890abcdef12345678",
		Type:    wallet.TypeWatchOnly,
	})
	require.NoError(t, err)

	w, err := mgr.Get("mywallet")
	require.NoError(t, err)
	assert.Equal(t, "mywallet", w.Name)
	assert.False(t, w.CanSign())
	assert.NotEmpty(t, w.CreatedAt)
}

func TestAddDuplicateWalletErrors(t *testing.T) {
	mgr := wallet.NewManager(wallet.WithInMemoryStore())

	require.NoError(t, mgr.Add("dup", &wallet.Wallet{Address: "0x1", Type: wallet.TypeWatchOnly}))
	err := mgr.Add("dup", &wallet.Wallet{Address: "0x2", Type: wallet.TypeWatchOnly})
	assert.ErrorIs(t, err, wallet.ErrWalletExists)
}

func TestAddWithKeyStoresKey(t *testing.T) {
	ks := wallet.NewInMemoryKeystore()
	mgr := wallet.NewManager(wallet.WithInMemoryStore(), wallet.WithKeyStore(ks))

	w, err := mgr.AddWithKey("deployer", hardhatKey)
	require.NoError(t, err)
	assert.Equal(t, hardhatAddr, w.Address)
	assert.True(t, w.CanSign())

	stored, err := ks.Retrieve(w.KeyRef)
	require.NoError(t, err)
	assert.Equal(t, hardhatKey[2:], stored, "keys are stored without the 0x prefix")
}

func TestAddWithKeyInvalid(t *testing.T) {
	mgr := wallet.NewManager(wallet.WithInMemoryStore())
	_, err := mgr.AddWithKey("bad", "not-a-valid-key")
	assert.ErrorIs(t, err, wallet.ErrInvalidKey)
}

func TestGenerate(t *testing.T) {
	mgr := wallet.NewManager()
	w, err := mgr.Generate("fresh")
	require.NoError(t, err)
	assert.Len(t, w.Address, 42)
	assert.True(t, w.CanSign())
}

func TestGetMissing(t *testing.T) {
	mgr := wallet.NewManager()
	_, err := mgr.Get("ghost")
	assert.ErrorIs(t, err, wallet.ErrWalletNotFound)
}

func TestRemoveDeletesKey(t *testing.T) {
	ks := wallet.NewInMemoryKeystore()
	mgr := wallet.NewManager(wallet.WithKeyStore(ks))
	w, err := mgr.AddWithKey("gone", hardhatKey)
	require.NoError(t, err)

	require.NoError(t, mgr.Remove("gone"))

	_, err = mgr.Get("gone")
	assert.ErrorIs(t, err, wallet.ErrWalletNotFound)
	_, err = ks.Retrieve(w.KeyRef)
	assert.Error(t, err)

	assert.ErrorIs(t, mgr.Remove("gone"), wallet.ErrWalletNotFound)
}

func TestListSorted(t *testing.T) {
	mgr := wallet.NewManager()
	for _, n := range []string{"charlie", "alice", "bob"} {
		require.NoError(t, mgr.Add(n, &wallet.Wallet{Address: "0x" + n, Type: wallet.TypeWatchOnly}))
	}

	list, err := mgr.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "alice", list[0].Name)
	assert.Equal(t, "bob", list[1].Name)
	assert.Equal(t, "charlie", list[2].Name)
}

func TestDefaultAndResolve(t *testing.T) {
	mgr := wallet.NewManager()

	_, err := mgr.Resolve("")
	assert.ErrorIs(t, err, wallet.ErrNoWallet)

	require.NoError(t, mgr.Add("only", &wallet.Wallet{Address: "0x1", Type: wallet.TypeWatchOnly}))
	w, err := mgr.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "only", w.Name, "a lone wallet is the default")

	require.NoError(t, mgr.Add("second", &wallet.Wallet{Address: "0x2", Type: wallet.TypeWatchOnly}))
	assert.Nil(t, mgr.Default(), "two wallets and none marked default")

	require.NoError(t, mgr.SetDefault("second"))
	w, err = mgr.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "second", w.Name)

	w, err = mgr.Resolve("only")
	require.NoError(t, err)
	assert.Equal(t, "only", w.Name)

	assert.ErrorIs(t, mgr.SetDefault("ghost"), wallet.ErrWalletNotFound)
}

func TestJSONStoreRoundTripThroughManager(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "wallets.json")
	ks := wallet.NewInMemoryKeystore()

	mgr := wallet.NewManager(wallet.WithStore(wallet.NewJSONStore(path)), wallet.WithKeyStore(ks))
	_, err := mgr.AddWithKey("deployer", hardhatKey)
	require.NoError(t, err)
	require.NoError(t, mgr.SetDefault("deployer"))

	reopened := wallet.NewManager(wallet.WithStore(wallet.NewJSONStore(path)), wallet.WithKeyStore(ks))
	w, err := reopened.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, hardhatAddr, w.Address)
	assert.True(t, w.IsDefault)
}
