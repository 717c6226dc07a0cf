package contract

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/cryptodevs/whitelist-dapp/internal/config"
)

// DeployResult describes a mined contract deployment.
type DeployResult struct {
	Address     string
	TxHash      string
	BlockNumber uint64
	GasUsed     uint64
	Deployer    string
	ChainID     int64
}

// Deploy submits the artifact's creation code with ABI-encoded constructor
// args, waits for one confirmation and returns where the contract landed.
func Deploy(ctx context.Context, backend Backend, signer TxSigner, art *Artifact, args ...interface{}) (*DeployResult, error) {
	if art == nil || len(art.Bytecode) == 0 {
		return nil, errors.New("artifact has no bytecode")
	}

	parsed, err := Compile(art.ABI)
	if err != nil {
		return nil, err
	}
	ctorArgs, err := parsed.Pack("", args...)
	if err != nil {
		return nil, fmt.Errorf("encoding constructor args: %w", err)
	}
	data := make([]byte, 0, len(art.Bytecode)+len(ctorArgs))
	data = append(data, art.Bytecode...)
	data = append(data, ctorArgs...)

	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting chain id: %w", err)
	}

	sender := NewSender(backend, signer, big.NewInt(chainID), config.GasLimitDeploy)
	hash, err := sender.Transact(ctx, "", data)
	if err != nil {
		return nil, err
	}

	receipt, err := backend.WaitForReceipt(ctx, hash, config.TxDeployTimeout)
	if err != nil {
		return nil, fmt.Errorf("waiting for deployment %s: %w", hash, err)
	}
	if receipt.ContractAddress == "" {
		return nil, fmt.Errorf("deployment %s mined without a contract address", hash)
	}

	return &DeployResult{
		Address:     receipt.ContractAddress,
		TxHash:      hash,
		BlockNumber: receipt.BlockNumber,
		GasUsed:     receipt.GasUsed,
		Deployer:    signer.Address(),
		ChainID:     chainID,
	}, nil
}
