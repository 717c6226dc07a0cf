package contract

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/cryptodevs/whitelist-dapp/internal/chain"
)

// Sender signs and broadcasts transactions from one account.
type Sender struct {
	backend     Backend
	signer      TxSigner
	chainID     *big.Int
	fallbackGas uint64
}

// NewSender creates a Sender. fallbackGas is used when the node cannot
// estimate gas for a reason other than a revert; zero disables the fallback.
func NewSender(backend Backend, signer TxSigner, chainID *big.Int, fallbackGas uint64) *Sender {
	return &Sender{
		backend:     backend,
		signer:      signer,
		chainID:     chainID,
		fallbackGas: fallbackGas,
	}
}

// Transact builds an EIP-1559 transaction carrying data, signs it and
// broadcasts it. An empty to creates a contract. Returns the tx hash.
func (s *Sender) Transact(ctx context.Context, to string, data []byte) (string, error) {
	from := s.signer.Address()
	dataHex := hexutil.Encode(data)

	gas, err := s.backend.EstimateGas(ctx, from, to, dataHex, nil)
	if err != nil {
		if isRevert(err) {
			return "", fmt.Errorf("estimating gas: %w: %v", chain.ErrReverted, err)
		}
		if s.fallbackGas == 0 {
			return "", fmt.Errorf("estimating gas: %w", err)
		}
		gas = s.fallbackGas
	}

	gasPrice, err := s.backend.GasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("getting gas price: %w", err)
	}

	nonce, err := s.backend.GetPendingNonce(ctx, from)
	if err != nil {
		return "", fmt.Errorf("getting nonce: %w", err)
	}

	txData := &types.DynamicFeeTx{
		ChainID:   s.chainID,
		Nonce:     nonce,
		GasTipCap: gasPrice,
		GasFeeCap: new(big.Int).Mul(gasPrice, big.NewInt(2)),
		Gas:       gas,
		Value:     big.NewInt(0),
		Data:      data,
	}
	if to != "" {
		addr := common.HexToAddress(to)
		txData.To = &addr
	}

	raw, err := s.signer.SignTx(types.NewTx(txData), s.chainID)
	if err != nil {
		return "", fmt.Errorf("signing transaction: %w", err)
	}

	hash, err := s.backend.SendRawTransaction(ctx, hexutil.Encode(raw))
	if err != nil {
		return "", fmt.Errorf("broadcasting transaction: %w", err)
	}
	return hash, nil
}

// isRevert reports whether the node rejected a simulation because the
// contract reverted.
func isRevert(err error) bool {
	var rpcErr *chain.RPCError
	if !errors.As(err, &rpcErr) {
		return false
	}
	return rpcErr.Code == 3 || strings.Contains(strings.ToLower(rpcErr.Message), "revert")
}
