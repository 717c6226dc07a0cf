package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"
)

// ErrReverted is returned by WaitForReceipt when the mined transaction has
// status 0.
var ErrReverted = errors.New("transaction reverted")

// EVMClient is a minimal JSON-RPC client for EVM chains.
type EVMClient struct {
	url          string
	client       *http.Client
	pollInterval time.Duration
}

// Balance holds a native balance result.
type Balance struct {
	Wei *big.Int
	ETH string
}

// TxReceipt holds the on-chain receipt of a mined transaction.
type TxReceipt struct {
	Hash            string
	Status          uint64 // 1 = success, 0 = reverted
	BlockNumber     uint64
	GasUsed         uint64
	ContractAddress string // non-empty when a contract was deployed
}

// Succeeded reports whether the receipt has status 1.
func (r *TxReceipt) Succeeded() bool { return r != nil && r.Status == 1 }

// NewEVMClient creates a new EVM JSON-RPC client pointed at url.
func NewEVMClient(url string) *EVMClient {
	return &EVMClient{
		url: url,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		pollInterval: 2 * time.Second,
	}
}

// URL returns the endpoint the client talks to.
func (c *EVMClient) URL() string { return c.url }

// SetPollInterval changes how often WaitForReceipt polls.
func (c *EVMClient) SetPollInterval(d time.Duration) { c.pollInterval = d }

// ChainID returns the chain's ID.
func (c *EVMClient) ChainID(ctx context.Context) (int64, error) {
	n, err := c.callBig(ctx, "chain id", "eth_chainId")
	if err != nil {
		return 0, err
	}
	return n.Int64(), nil
}

// GetBlockNumber returns the latest block number.
func (c *EVMClient) GetBlockNumber(ctx context.Context) (uint64, error) {
	n, err := c.callBig(ctx, "block number", "eth_blockNumber")
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

// GetBalance returns the native balance for an address.
func (c *EVMClient) GetBalance(ctx context.Context, address string) (*Balance, error) {
	wei, err := c.callBig(ctx, "balance", "eth_getBalance", address, "latest")
	if err != nil {
		return nil, err
	}
	return &Balance{Wei: wei, ETH: WeiToETH(wei)}, nil
}

// GetPendingNonce returns the transaction count including queued
// transactions, using the "pending" block tag.
func (c *EVMClient) GetPendingNonce(ctx context.Context, address string) (uint64, error) {
	n, err := c.callBig(ctx, "pending nonce", "eth_getTransactionCount", address, "pending")
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

// GasPrice returns the current gas price.
func (c *EVMClient) GasPrice(ctx context.Context) (*big.Int, error) {
	return c.callBig(ctx, "gas price", "eth_gasPrice")
}

// EstimateGas estimates gas for a transaction. An empty to estimates a
// contract creation.
func (c *EVMClient) EstimateGas(ctx context.Context, from, to, data string, value *big.Int) (uint64, error) {
	params := map[string]string{"from": from}
	if to != "" {
		params["to"] = to
	}
	if data != "" {
		params["data"] = data
	}
	if value != nil && value.Sign() > 0 {
		params["value"] = "0x" + value.Text(16)
	}

	n, err := c.callBig(ctx, "gas estimate", "eth_estimateGas", params)
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

// SendRawTransaction broadcasts a signed raw transaction and returns its hash.
func (c *EVMClient) SendRawTransaction(ctx context.Context, rawTx string) (string, error) {
	var hash string
	if err := c.call(ctx, &hash, "eth_sendRawTransaction", rawTx); err != nil {
		return "", err
	}
	return hash, nil
}

// CallContract executes a read-only eth_call with the given calldata.
func (c *EVMClient) CallContract(ctx context.Context, toAddr, calldata string) (string, error) {
	var out string
	err := c.call(ctx, &out, "eth_call", map[string]string{
		"to":   toAddr,
		"data": calldata,
	}, "latest")
	if err != nil {
		return "", err
	}
	return out, nil
}

// GetCode returns the bytecode at an address. Empty "0x" means no contract.
func (c *EVMClient) GetCode(ctx context.Context, address string) (string, error) {
	var out string
	if err := c.call(ctx, &out, "eth_getCode", address, "latest"); err != nil {
		return "", err
	}
	return out, nil
}

// GetTransactionReceipt fetches the receipt for hash.
// Returns nil, nil if the transaction is still pending.
func (c *EVMClient) GetTransactionReceipt(ctx context.Context, hash string) (*TxReceipt, error) {
	var r *struct {
		Status          string `json:"status"`
		BlockNumber     string `json:"blockNumber"`
		GasUsed         string `json:"gasUsed"`
		ContractAddress string `json:"contractAddress"`
	}
	if err := c.call(ctx, &r, "eth_getTransactionReceipt", hash); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil // still pending
	}

	receipt := &TxReceipt{Hash: hash, ContractAddress: r.ContractAddress}
	if s, ok := parseBigHex(r.Status); ok {
		receipt.Status = s.Uint64()
	}
	if bn, ok := parseBigHex(r.BlockNumber); ok {
		receipt.BlockNumber = bn.Uint64()
	}
	if gu, ok := parseBigHex(r.GasUsed); ok {
		receipt.GasUsed = gu.Uint64()
	}
	return receipt, nil
}

// WaitForReceipt polls until the transaction is mined, timeout expires or
// ctx is cancelled. A mined but reverted transaction returns its receipt
// together with an error wrapping ErrReverted.
func (c *EVMClient) WaitForReceipt(ctx context.Context, hash string, timeout time.Duration) (*TxReceipt, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.GetTransactionReceipt(ctx, hash)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("transaction %s not mined within %s: %w", hash, timeout, ctx.Err())
			}
			return nil, err
		}
		if receipt != nil {
			if !receipt.Succeeded() {
				return receipt, fmt.Errorf("%w (hash: %s)", ErrReverted, hash)
			}
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("transaction %s not mined within %s: %w", hash, timeout, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Ping tests the RPC endpoint and returns latency + block number.
func (c *EVMClient) Ping(ctx context.Context) (latency time.Duration, blockNum uint64, err error) {
	start := time.Now()
	blockNum, err = c.GetBlockNumber(ctx)
	return time.Since(start), blockNum, err
}

// --- internal JSON-RPC plumbing ---

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int           `json:"id"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

// RPCError is a JSON-RPC error object returned by the node.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

func (c *EVMClient) call(ctx context.Context, out interface{}, method string, params ...interface{}) error {
	if params == nil {
		params = []interface{}{}
	}
	reqBody, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(reqBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("RPC request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}

	if rpcResp.Error != nil {
		return rpcResp.Error
	}

	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return fmt.Errorf("parsing result: %w", err)
	}
	return nil
}

// callBig calls a method whose result is a hex quantity.
func (c *EVMClient) callBig(ctx context.Context, what, method string, params ...interface{}) (*big.Int, error) {
	var hexStr string
	if err := c.call(ctx, &hexStr, method, params...); err != nil {
		return nil, err
	}
	n, ok := parseBigHex(hexStr)
	if !ok {
		return nil, fmt.Errorf("could not parse %s: %q", what, hexStr)
	}
	return n, nil
}

// --- math helpers ---

var eth1 = new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))

// WeiToETH converts a wei amount to an ETH decimal string.
func WeiToETH(wei *big.Int) string {
	f := new(big.Float).SetInt(wei)
	f.Quo(f, eth1)
	return f.Text('f', 18)
}

// WeiToGwei converts wei to a float Gwei amount for display.
func WeiToGwei(wei *big.Int) float64 {
	if wei == nil {
		return 0
	}
	f, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(1e9)).Float64()
	return f
}

func parseBigHex(s string) (*big.Int, bool) {
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return nil, false
	}
	return new(big.Int).SetString(s, 16)
}
