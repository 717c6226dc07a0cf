package config

import "time"

// DefaultExpectedChainID is the chain the client insists on unless configured.
const DefaultExpectedChainID = int64(5) // Goerli

// MaxWhitelistedAddresses is the constructor argument of every deployment.
// It is not configurable.
const MaxWhitelistedAddresses = uint8(10)

// Gas limits used as EstimateGas fallbacks when the node cannot simulate the tx.
const (
	GasLimitJoin   = uint64(100_000)
	GasLimitDeploy = uint64(1_500_000)
)

// Timeouts for chain interaction.
const (
	RPCSelectTimeout = 10 * time.Second
	RPCCallTimeout   = 20 * time.Second
	TxConfirmTimeout = 3 * time.Minute
	TxDeployTimeout  = 5 * time.Minute
)
