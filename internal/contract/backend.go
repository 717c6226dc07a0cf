package contract

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/core/types"

	"github.com/cryptodevs/whitelist-dapp/internal/chain"
)

// Reader is the read-only slice of a chain client.
type Reader interface {
	CallContract(ctx context.Context, to, calldata string) (string, error)
}

// Backend is everything needed to read, write and deploy. *chain.EVMClient
// satisfies it.
type Backend interface {
	Reader
	ChainID(ctx context.Context) (int64, error)
	GetPendingNonce(ctx context.Context, address string) (uint64, error)
	GasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, from, to, data string, value *big.Int) (uint64, error)
	SendRawTransaction(ctx context.Context, rawTx string) (string, error)
	WaitForReceipt(ctx context.Context, hash string, timeout time.Duration) (*chain.TxReceipt, error)
}

// TxSigner signs transactions for one account. *wallet.Signer satisfies it.
type TxSigner interface {
	Address() string
	SignTx(tx *types.Transaction, chainID *big.Int) ([]byte, error)
}

var _ Backend = (*chain.EVMClient)(nil)
