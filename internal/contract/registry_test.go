package contract_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptodevs/whitelist-dapp/internal/contract"
)

func TestRegistryAddGetSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contracts.json")
	reg := contract.NewRegistry(path)
	require.NoError(t, reg.Load(), "missing file is an empty registry")

	reg.Add(&contract.Entry{Name: "Whitelist", Network: "goerli", ChainID: 5, Address: "0xabc", TxHash: "0x1"})
	reg.Add(&contract.Entry{Name: "Whitelist", Network: "hardhat", ChainID: 31337, Address: "0xdef"})
	require.NoError(t, reg.Save())

	reloaded := contract.NewRegistry(path)
	require.NoError(t, reloaded.Load())

	e, err := reloaded.Get("whitelist", "Goerli")
	require.NoError(t, err)
	assert.Equal(t, "0xabc", e.Address)
	assert.Equal(t, int64(5), e.ChainID)

	all := reloaded.All()
	require.Len(t, all, 2)
	assert.Equal(t, "goerli", all[0].Network)
	assert.Equal(t, "hardhat", all[1].Network)
}

func TestRegistryRedeployReplaces(t *testing.T) {
	reg := contract.NewRegistry(filepath.Join(t.TempDir(), "contracts.json"))
	reg.Add(&contract.Entry{Name: "Whitelist", Network: "goerli", Address: "0xold"})
	reg.Add(&contract.Entry{Name: "Whitelist", Network: "goerli", Address: "0xnew"})

	e, err := reg.Get("Whitelist", "goerli")
	require.NoError(t, err)
	assert.Equal(t, "0xnew", e.Address)
	assert.Len(t, reg.All(), 1)
}

func TestRegistryNotFound(t *testing.T) {
	reg := contract.NewRegistry(filepath.Join(t.TempDir(), "contracts.json"))

	_, err := reg.Get("Whitelist", "goerli")
	assert.ErrorIs(t, err, contract.ErrContractNotFound)
	assert.ErrorIs(t, reg.Remove("Whitelist", "goerli"), contract.ErrContractNotFound)
}

func TestRegistryRemove(t *testing.T) {
	reg := contract.NewRegistry(filepath.Join(t.TempDir(), "contracts.json"))
	reg.Add(&contract.Entry{Name: "Whitelist", Network: "goerli", Address: "0xabc"})

	require.NoError(t, reg.Remove("Whitelist", "goerli"))
	assert.Empty(t, reg.All())
}

func TestRegistryLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contracts.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o600))

	err := contract.NewRegistry(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}
