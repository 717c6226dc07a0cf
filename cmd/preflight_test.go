package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptodevs/whitelist-dapp/internal/chain"
)

func TestRequireContract(t *testing.T) {
	node := rpcNode(t, map[string]interface{}{"eth_getCode": "0x6080604052"})
	require.NoError(t, requireContract(context.Background(), chain.NewEVMClient(node.URL), deployedAddr, goerli(t)))

	empty := rpcNode(t, map[string]interface{}{"eth_getCode": "0x"})
	err := requireContract(context.Background(), chain.NewEVMClient(empty.URL), deployedAddr, goerli(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no contract deployed at "+deployedAddr+" on goerli")

	broken := rpcNode(t, nil)
	err = requireContract(context.Background(), chain.NewEVMClient(broken.URL), deployedAddr, goerli(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checking contract")
}

func TestWarnIfUnfunded(t *testing.T) {
	useTempConfig(t)
	// 1 gwei gas price: 100k gas costs 0.0001 ETH.
	poor := rpcNode(t, map[string]interface{}{"eth_getBalance": "0x0", "eth_gasPrice": "0x3b9aca00"})

	var out bytes.Buffer
	warned := warnIfUnfunded(context.Background(), &out, chain.NewEVMClient(poor.URL), testAddr, 100_000, goerli(t))
	assert.True(t, warned)
	assert.Contains(t, out.String(), "0.000100000000000000 ETH")
	assert.Contains(t, out.String(), "1.00 gwei")
	assert.Contains(t, out.String(), "Faucet: https://goerlifaucet.com")
}

func TestWarnIfUnfundedEnoughBalance(t *testing.T) {
	useTempConfig(t)
	rich := rpcNode(t, map[string]interface{}{"eth_getBalance": "0xDE0B6B3A7640000", "eth_gasPrice": "0x3b9aca00"})

	var out bytes.Buffer
	assert.False(t, warnIfUnfunded(context.Background(), &out, chain.NewEVMClient(rich.URL), testAddr, 100_000, goerli(t)))
	assert.Empty(t, out.String())
}

func TestWarnIfUnfundedLookupFailureIsSilent(t *testing.T) {
	useTempConfig(t)
	node := rpcNode(t, nil)

	var out bytes.Buffer
	assert.False(t, warnIfUnfunded(context.Background(), &out, chain.NewEVMClient(node.URL), testAddr, 100_000, goerli(t)))
	assert.Empty(t, out.String())
}
