package config

// Config holds all whitelist configuration.
type Config struct {
	Network         string              `json:"network"`                    // chain slug, e.g. "goerli"
	RPCURL          string              `json:"rpc_url,omitempty"`          // pins the RPC; skips benchmarking
	RPCAlgorithm    string              `json:"rpc_algorithm"`              // "fastest" | "round-robin" | "failover"
	ContractAddress string              `json:"contract_address,omitempty"` // deployed Whitelist contract
	ArtifactPath    string              `json:"artifact_path,omitempty"`    // Hardhat/Foundry artifact used by deploy
	DefaultWallet   string              `json:"default_wallet,omitempty"`
	ExpectedChainID int64               `json:"expected_chain_id"`
	CustomRPCs      map[string][]string `json:"custom_rpcs"`

	// internal: config dir path used for Save()
	configDir string
}
