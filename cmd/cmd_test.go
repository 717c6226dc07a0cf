package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cryptodevs/whitelist-dapp/internal/config"
	"github.com/cryptodevs/whitelist-dapp/internal/contract"
)

// Well-known Hardhat test account #0. Never fund on a public network.
const (
	testKey  = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAddr = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

// useTempConfig points the package globals at a fresh config directory.
func useTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	c, err := config.Load(dir)
	require.NoError(t, err)

	prevCfg, prevEnv, prevLog := cfg, env, log
	cfg, env, log = c, &config.Env{}, zap.NewNop()
	t.Cleanup(func() { cfg, env, log = prevCfg, prevEnv, prevLog })
	return dir
}

// fakeRPC is a JSON-RPC server answering methods with fixed results. It
// records the params of every request.
type fakeRPC struct {
	*httptest.Server

	mu     sync.Mutex
	params map[string][]json.RawMessage
}

// lastParam returns the first param of the latest call to method.
func (n *fakeRPC) lastParam(t *testing.T, method string) json.RawMessage {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	p, ok := n.params[method]
	require.True(t, ok, "%s was never called", method)
	require.NotEmpty(t, p)
	return p[0]
}

func rpcNode(t *testing.T, results map[string]interface{}) *fakeRPC {
	t.Helper()
	n := &fakeRPC{params: make(map[string][]json.RawMessage)}
	n.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     int               `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		n.mu.Lock()
		n.params[req.Method] = req.Params
		n.mu.Unlock()

		resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
		if res, ok := results[req.Method]; ok {
			resp["result"] = res
		} else {
			resp["error"] = map[string]interface{}{"code": -32601, "message": "method not found"}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	}))
	t.Cleanup(n.Close)
	return n
}

// deployNode answers everything a deployment needs on chain 5, with receipt
// as the mined result.
func deployNode(t *testing.T, receipt map[string]interface{}) *fakeRPC {
	return rpcNode(t, map[string]interface{}{
		"eth_chainId":               "0x5",
		"eth_estimateGas":           "0x5208",
		"eth_gasPrice":              "0x3b9aca00",
		"eth_getTransactionCount":   "0x0",
		"eth_sendRawTransaction":    "0x" + strings.Repeat("ab", 32),
		"eth_getTransactionReceipt": receipt,
	})
}

// writeArtifact writes a Hardhat-style Whitelist artifact and returns its path.
func writeArtifact(t *testing.T) string {
	t.Helper()
	b, ok := contract.GetBuiltin(contract.WhitelistID)
	require.True(t, ok)
	data, err := json.Marshal(map[string]interface{}{
		"contractName": "Whitelist",
		"abi":          b.ABI,
		"bytecode":     "0x6080604052",
	})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "Whitelist.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// runCLI executes the root command against the config directory dir and
// returns what it printed to stdout.
func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	prevCfg, prevEnv, prevLog := cfg, env, log
	t.Cleanup(func() {
		cfg, env, log = prevCfg, prevEnv, prevLog
		cfgDir, networkFlag, rpcFlag, verbose = "", "", "", false
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"--config", dir}, args...))
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()
	err := rootCmd.Execute()
	return out.String(), err
}
