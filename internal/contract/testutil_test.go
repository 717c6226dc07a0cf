package contract

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cryptodevs/whitelist-dapp/internal/chain"
	"github.com/cryptodevs/whitelist-dapp/internal/wallet"
)

// Well-known Hardhat test account #0. Never fund on a public network.
const (
	testKey  = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAddr = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

	contractAddr = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
)

// word returns a 32-byte ABI word holding n.
func word(n int) string {
	const hexDigits = "0123456789abcdef"
	return "0x" + strings.Repeat("0", 62) + string(hexDigits[n/16]) + string(hexDigits[n%16])
}

// handlerFunc answers one JSON-RPC method. Returning an *chain.RPCError
// sends it as the error member.
type handlerFunc func(params []json.RawMessage) interface{}

// fakeNode is a JSON-RPC server that records every request.
type fakeNode struct {
	mu       sync.Mutex
	handlers map[string]handlerFunc
	calls    map[string][][]json.RawMessage
	srv      *httptest.Server
}

func newFakeNode(t *testing.T, handlers map[string]handlerFunc) *fakeNode {
	t.Helper()
	n := &fakeNode{handlers: handlers, calls: make(map[string][][]json.RawMessage)}
	n.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
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
		n.calls[req.Method] = append(n.calls[req.Method], req.Params)
		h, ok := n.handlers[req.Method]
		n.mu.Unlock()

		resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
		switch {
		case !ok:
			resp["error"] = map[string]interface{}{"code": -32601, "message": "method not found"}
		default:
			res := h(req.Params)
			if rpcErr, isErr := res.(*chain.RPCError); isErr {
				resp["error"] = rpcErr
			} else {
				resp["result"] = res
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	}))
	t.Cleanup(n.srv.Close)
	return n
}

func (n *fakeNode) client() *chain.EVMClient { return chain.NewEVMClient(n.srv.URL) }

func (n *fakeNode) callCount(method string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls[method])
}

func (n *fakeNode) lastParams(method string) []json.RawMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := n.calls[method]
	if len(c) == 0 {
		return nil
	}
	return c[len(c)-1]
}

func constant(v interface{}) handlerFunc {
	return func([]json.RawMessage) interface{} { return v }
}

// txNode answers everything a Sender needs, on chain id 5.
func txNode(t *testing.T, extra map[string]handlerFunc) *fakeNode {
	t.Helper()
	h := map[string]handlerFunc{
		"eth_chainId":             constant("0x5"),
		"eth_estimateGas":         constant("0x5208"),
		"eth_gasPrice":            constant("0x3b9aca00"),
		"eth_getTransactionCount": constant("0x0"),
		"eth_sendRawTransaction":  constant("0x" + strings.Repeat("ab", 32)),
	}
	for k, v := range extra {
		h[k] = v
	}
	return newFakeNode(t, h)
}

func testSigner(t *testing.T) *wallet.Signer {
	t.Helper()
	s, err := wallet.NewKeySigner("test", testKey)
	require.NoError(t, err)
	return s
}
