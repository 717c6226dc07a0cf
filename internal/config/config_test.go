package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cryptodevs/whitelist-dapp/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "goerli", cfg.Network)
	assert.Equal(t, "fastest", cfg.RPCAlgorithm)
	assert.Equal(t, int64(5), cfg.ExpectedChainID)
	assert.Empty(t, cfg.ContractAddress)
	assert.Equal(t, "artifacts/contracts/Whitelist.sol/Whitelist.json", cfg.ArtifactPath)
}

func TestSaveAndReloadConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)

	cfg.Network = "sepolia"
	cfg.DefaultWallet = "deployer"
	cfg.ContractAddress = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	cfg.RPCAlgorithm = "round-robin"

	require.NoError(t, cfg.Save())

	reloaded, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "sepolia", reloaded.Network)
	assert.Equal(t, "deployer", reloaded.DefaultWallet)
	assert.Equal(t, "0x5FbDB2315678afecb367f032d93F642f64180aa3", reloaded.ContractAddress)
	assert.Equal(t, "round-robin", reloaded.RPCAlgorithm)
}

func TestLoadZeroValuesFallBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"),
		[]byte(`{"network":"goerli","expected_chain_id":0}`), 0o600))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultExpectedChainID, cfg.ExpectedChainID)
	assert.NotNil(t, cfg.CustomRPCs)
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{broken"), 0o600))

	_, err := config.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestAddCustomRPC(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)

	require.NoError(t, cfg.AddRPC("goerli", "https://custom.goerli.rpc"))

	rpcs := cfg.GetRPCs("goerli")
	assert.Contains(t, rpcs, "https://custom.goerli.rpc")
}

func TestAddDuplicateRPCErrors(t *testing.T) {
	dir := t.TempDir()
	cfg, _ := config.Load(dir)

	cfg.AddRPC("goerli", "https://custom.goerli.rpc") //nolint:errcheck
	err := cfg.AddRPC("goerli", "https://custom.goerli.rpc")
	assert.Error(t, err)
}

func TestRemoveCustomRPC(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)

	cfg.AddRPC("goerli", "https://rpc1.goerli") //nolint:errcheck
	cfg.AddRPC("goerli", "https://rpc2.goerli") //nolint:errcheck

	require.NoError(t, cfg.RemoveRPC("goerli", "https://rpc1.goerli"))

	rpcs := cfg.GetRPCs("goerli")
	assert.NotContains(t, rpcs, "https://rpc1.goerli")
	assert.Contains(t, rpcs, "https://rpc2.goerli")
}

func TestRemoveNonExistentRPCErrors(t *testing.T) {
	dir := t.TempDir()
	cfg, _ := config.Load(dir)

	err := cfg.RemoveRPC("goerli", "https://nonexistent.rpc")
	assert.Error(t, err)
}

func TestConfigFileCreatedOnSave(t *testing.T) {
	dir := t.TempDir()
	cfg, _ := config.Load(dir)
	require.NoError(t, cfg.Save())

	_, err := os.Stat(filepath.Join(dir, "config.json"))
	assert.NoError(t, err, "config.json should be created on save")
}

func TestConfigPaths(t *testing.T) {
	dir := t.TempDir()
	cfg, _ := config.Load(dir)
	assert.Equal(t, dir, cfg.Dir())
	assert.Equal(t, filepath.Join(dir, "wallets.json"), cfg.WalletsPath())
	assert.Equal(t, filepath.Join(dir, "contracts.json"), cfg.ContractsPath())
	assert.Equal(t, filepath.Join(dir, "whitelist.log"), cfg.LogPath())
}

func TestLoadFromNonExistentDir(t *testing.T) {
	dir := t.TempDir() + "/subdir"
	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "goerli", cfg.Network)
}
