package chain

import (
	"errors"
	"strings"
	"time"
)

// ErrChainNotFound is returned when a chain is not in the registry.
var ErrChainNotFound = errors.New("chain not found")

// Chain holds the metadata for a single EVM network.
type Chain struct {
	Name           string   `json:"name"`
	DisplayName    string   `json:"display_name"`
	ChainID        int64    `json:"chain_id"`
	NativeCurrency string   `json:"native_currency"`
	RPCs           []string `json:"rpcs"`
	Explorer       string   `json:"explorer,omitempty"`
	FaucetURL      string   `json:"faucet_url,omitempty"`

	// PollInterval is how often receipts are polled; zero keeps the
	// client default.
	PollInterval time.Duration `json:"-"`
}

// NewClient returns a client for url that polls at the chain's pace.
func (c *Chain) NewClient(url string) *EVMClient {
	client := NewEVMClient(url)
	if c.PollInterval > 0 {
		client.SetPollInterval(c.PollInterval)
	}
	return client
}

// Registry is the chain registry.
type Registry struct {
	chains []Chain
	byName map[string]*Chain
	byID   map[int64]*Chain
}

// NewRegistry creates the registry of supported networks.
func NewRegistry() *Registry {
	chains := allChains()
	r := &Registry{
		chains: chains,
		byName: make(map[string]*Chain, len(chains)),
		byID:   make(map[int64]*Chain, len(chains)),
	}
	for i := range r.chains {
		c := &r.chains[i]
		r.byName[c.Name] = c
		r.byID[c.ChainID] = c
	}
	return r
}

// All returns every chain in the registry.
func (r *Registry) All() []Chain {
	return r.chains
}

// GetByName finds a chain by its slug name (e.g. "goerli").
func (r *Registry) GetByName(name string) (*Chain, error) {
	c, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return nil, ErrChainNotFound
	}
	return c, nil
}

// GetByChainID finds a chain by its numeric chain ID.
func (r *Registry) GetByChainID(id int64) (*Chain, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, ErrChainNotFound
	}
	return c, nil
}

// AddressURL links an address on the chain's explorer, or "" without one.
func (c *Chain) AddressURL(addr string) string {
	if c.Explorer == "" {
		return ""
	}
	return c.Explorer + "/address/" + addr
}

// TxURL links a transaction on the chain's explorer, or "" without one.
func (c *Chain) TxURL(hash string) string {
	if c.Explorer == "" {
		return ""
	}
	return c.Explorer + "/tx/" + hash
}

// --- chain data ---

func allChains() []Chain {
	return []Chain{
		{
			Name: "goerli", DisplayName: "Goerli", ChainID: 5,
			NativeCurrency: "ETH",
			RPCs: []string{
				"https://ethereum-goerli-rpc.publicnode.com",
				"https://goerli.blockpi.network/v1/rpc/public",
				"https://rpc.ankr.com/eth_goerli",
			},
			Explorer:  "https://goerli.etherscan.io",
			FaucetURL: "https://goerlifaucet.com",
		},
		{
			Name: "sepolia", DisplayName: "Sepolia", ChainID: 11155111,
			NativeCurrency: "ETH",
			RPCs: []string{
				"https://rpc.sepolia.org",
				"https://sepolia.gateway.tenderly.co",
				"https://ethereum-sepolia-rpc.publicnode.com",
			},
			Explorer:  "https://sepolia.etherscan.io",
			FaucetURL: "https://sepoliafaucet.com",
		},
		{
			Name: "ethereum", DisplayName: "Ethereum", ChainID: 1,
			NativeCurrency: "ETH",
			RPCs:           []string{"https://eth.llamarpc.com", "https://ethereum-rpc.publicnode.com"},
			Explorer:       "https://etherscan.io",
		},
		{
			Name: "hardhat", DisplayName: "Hardhat (local)", ChainID: 31337,
			NativeCurrency: "ETH",
			RPCs:           []string{"http://127.0.0.1:8545"},
			// Automine: transactions are mined as soon as they arrive.
			PollInterval: 200 * time.Millisecond,
		},
	}
}
