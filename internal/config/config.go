package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

const (
	defaultNetwork   = "goerli"
	defaultAlgorithm = "fastest"
	// Hardhat's output path for contracts/Whitelist.sol, relative to the project root.
	defaultArtifact = "artifacts/contracts/Whitelist.sol/Whitelist.json"

	configFile    = "config.json"
	walletsFile   = "wallets.json"
	contractsFile = "contracts.json"
	logFile       = "whitelist.log"
)

// Load reads config from dir (or creates defaults). dir defaults to ~/.whitelist.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".whitelist")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := defaults(dir)

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.configDir = dir
	if cfg.CustomRPCs == nil {
		cfg.CustomRPCs = make(map[string][]string)
	}
	// Zero values in an older file fall back to the defaults.
	if cfg.ExpectedChainID == 0 {
		cfg.ExpectedChainID = DefaultExpectedChainID
	}
	if cfg.ArtifactPath == "" {
		cfg.ArtifactPath = defaultArtifact
	}

	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// AddRPC adds a custom RPC URL for a chain.
func (c *Config) AddRPC(chain, url string) error {
	if c.CustomRPCs == nil {
		c.CustomRPCs = make(map[string][]string)
	}
	if slices.Contains(c.CustomRPCs[chain], url) {
		return fmt.Errorf("RPC %s already exists for chain %s", url, chain)
	}
	c.CustomRPCs[chain] = append(c.CustomRPCs[chain], url)
	return nil
}

// RemoveRPC removes a custom RPC URL for a chain.
func (c *Config) RemoveRPC(chain, url string) error {
	rpcs := c.CustomRPCs[chain]
	idx := slices.Index(rpcs, url)
	if idx == -1 {
		return fmt.Errorf("RPC %s not found for chain %s", url, chain)
	}
	c.CustomRPCs[chain] = slices.Delete(rpcs, idx, idx+1)
	return nil
}

// GetRPCs returns custom RPCs for a chain.
func (c *Config) GetRPCs(chain string) []string {
	return c.CustomRPCs[chain]
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// WalletsPath is the wallet store file.
func (c *Config) WalletsPath() string { return filepath.Join(c.configDir, walletsFile) }

// ContractsPath is the deployed-contract registry file.
func (c *Config) ContractsPath() string { return filepath.Join(c.configDir, contractsFile) }

// LogPath is where the interactive client writes its log.
func (c *Config) LogPath() string { return filepath.Join(c.configDir, logFile) }

// --- helpers ---

func defaults(dir string) *Config {
	return &Config{
		Network:         defaultNetwork,
		RPCAlgorithm:    defaultAlgorithm,
		ArtifactPath:    defaultArtifact,
		ExpectedChainID: DefaultExpectedChainID,
		CustomRPCs:      make(map[string][]string),
		configDir:       dir,
	}
}
