package contract

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"golang.org/x/crypto/sha3"
)

// ABIEntry is one ABI entry (function, event, etc.).
type ABIEntry struct {
	Name            string     `json:"name,omitempty"`
	Type            string     `json:"type"`
	Inputs          []ABIParam `json:"inputs"`
	Outputs         []ABIParam `json:"outputs,omitempty"`
	StateMutability string     `json:"stateMutability,omitempty"`
}

// ABIParam is a parameter in an ABI entry.
type ABIParam struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	InternalType string `json:"internalType,omitempty"`
}

// IsReadFunction returns true if the function is read-only (view/pure).
func (e ABIEntry) IsReadFunction() bool {
	return e.Type == "function" &&
		(e.StateMutability == "view" || e.StateMutability == "pure")
}

// IsWriteFunction returns true if the function modifies state.
func (e ABIEntry) IsWriteFunction() bool {
	return e.Type == "function" &&
		(e.StateMutability == "nonpayable" || e.StateMutability == "payable")
}

// Signature returns the canonical signature, e.g. "whitelistedAddresses(address)".
func (e ABIEntry) Signature() string {
	types := make([]string, len(e.Inputs))
	for i, p := range e.Inputs {
		types[i] = p.Type
	}
	return e.Name + "(" + strings.Join(types, ",") + ")"
}

// Selector returns the 0x-prefixed 4-byte function selector.
func (e ABIEntry) Selector() string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(e.Signature()))
	return "0x" + hex.EncodeToString(h.Sum(nil)[:4])
}

// Functions returns the function entries of entries in declaration order.
func Functions(entries []ABIEntry) []ABIEntry {
	var out []ABIEntry
	for _, e := range entries {
		if e.Type == "function" {
			out = append(out, e)
		}
	}
	return out
}

// Compile turns ABI entries into a go-ethereum ABI used for packing and
// unpacking.
func Compile(entries []ABIEntry) (abi.ABI, error) {
	data, err := json.Marshal(entries)
	if err != nil {
		return abi.ABI{}, fmt.Errorf("marshaling ABI: %w", err)
	}
	parsed, err := abi.JSON(strings.NewReader(string(data)))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("parsing ABI: %w", err)
	}
	return parsed, nil
}
