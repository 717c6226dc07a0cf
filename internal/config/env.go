package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix is prepended to every variable name, e.g. WHITELIST_RPC_URL.
const envPrefix = "whitelist"

// Env holds the environment overrides. Empty fields leave the file
// configuration untouched.
type Env struct {
	ConfigDir       string `envconfig:"CONFIG_DIR"`
	Network         string `envconfig:"NETWORK"`
	RPCURL          string `envconfig:"RPC_URL"`
	ContractAddress string `envconfig:"CONTRACT_ADDRESS"`
	ArtifactPath    string `envconfig:"ARTIFACT"`
	Wallet          string `envconfig:"WALLET"`
	ExpectedChainID int64  `envconfig:"EXPECTED_CHAIN_ID"`

	// PrivateKey signs with an ephemeral wallet instead of the keychain,
	// the way a Hardhat deploy script reads PRIVATE_KEY.
	PrivateKey string `envconfig:"PRIVATE_KEY"`
	// KeyringPassword unlocks the file keyring without a terminal prompt.
	KeyringPassword string `envconfig:"KEYRING_PASSWORD"`
}

// LoadEnv reads WHITELIST_* variables.
func LoadEnv() (*Env, error) {
	var e Env
	if err := envconfig.Process(envPrefix, &e); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	return &e, nil
}

// ApplyEnv overlays the non-empty environment values onto c.
func (c *Config) ApplyEnv(e *Env) {
	if e == nil {
		return
	}
	if e.Network != "" {
		c.Network = e.Network
	}
	if e.RPCURL != "" {
		c.RPCURL = e.RPCURL
	}
	if e.ContractAddress != "" {
		c.ContractAddress = e.ContractAddress
	}
	if e.ArtifactPath != "" {
		c.ArtifactPath = e.ArtifactPath
	}
	if e.Wallet != "" {
		c.DefaultWallet = e.Wallet
	}
	if e.ExpectedChainID != 0 {
		c.ExpectedChainID = e.ExpectedChainID
	}
}
