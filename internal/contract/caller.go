package contract

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ErrNoCode is returned when a call hits an address without contract code.
var ErrNoCode = errors.New("no contract code at address")

// Caller calls read-only (view/pure) contract functions.
type Caller struct {
	backend Reader
	abi     abi.ABI
}

// NewCaller creates a Caller from parsed ABI entries.
func NewCaller(backend Reader, entries []ABIEntry) (*Caller, error) {
	parsed, err := Compile(entries)
	if err != nil {
		return nil, err
	}
	return &Caller{backend: backend, abi: parsed}, nil
}

// Call calls a read function on a contract and returns the decoded outputs.
func (c *Caller) Call(ctx context.Context, contractAddr, funcName string, args ...interface{}) ([]interface{}, error) {
	method, ok := c.abi.Methods[funcName]
	if !ok {
		return nil, fmt.Errorf("function %q not found in ABI", funcName)
	}
	if !method.IsConstant() {
		return nil, fmt.Errorf("function %q is not a read function (stateMutability: %s)", funcName, method.StateMutability)
	}

	calldata, err := c.abi.Pack(funcName, args...)
	if err != nil {
		return nil, fmt.Errorf("encoding call: %w", err)
	}

	result, err := c.backend.CallContract(ctx, contractAddr, hexutil.Encode(calldata))
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", funcName, err)
	}

	var raw []byte
	if result != "" && result != "0x" {
		if raw, err = hexutil.Decode(result); err != nil {
			return nil, fmt.Errorf("decoding %s result: %w", funcName, err)
		}
	}
	if len(raw) == 0 && len(method.Outputs) > 0 {
		return nil, fmt.Errorf("%w %s", ErrNoCode, contractAddr)
	}

	out, err := c.abi.Unpack(funcName, raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s result: %w", funcName, err)
	}
	return out, nil
}
