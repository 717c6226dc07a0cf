package contract

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Artifact holds the ABI and deployment bytecode of a compiled contract:
// everything a deployment factory needs.
type Artifact struct {
	Name     string
	ABI      []ABIEntry
	Bytecode []byte
}

// LoadFromArtifact loads an ABI from a local file that is either:
//   - a raw ABI JSON array: [{"type":"function",...}, ...]
//   - a Hardhat/Foundry artifact: {"abi":[...],"bytecode":"0x...",...}
func LoadFromArtifact(path string) ([]ABIEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read ABI file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("ABI file is empty: %s", path)
	}

	var artifact struct {
		ABI json.RawMessage `json:"abi"`
	}
	if json.Unmarshal(data, &artifact) == nil && len(artifact.ABI) > 1 && artifact.ABI[0] == '[' {
		data = artifact.ABI
	}

	entries, err := parseABI(data)
	if err != nil {
		return nil, err
	}
	if err := validateABI(entries, path); err != nil {
		return nil, err
	}
	return entries, nil
}

// LoadArtifact loads both the ABI and the deployment bytecode from a
// Hardhat or Foundry artifact. Raw ABI arrays, interfaces and abstract
// contracts are rejected since they cannot be deployed.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read artifact file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("artifact file is empty: %s", path)
	}

	var raw struct {
		ContractName string          `json:"contractName"`
		ABI          json.RawMessage `json:"abi"`
		Bytecode     json.RawMessage `json:"bytecode"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid artifact JSON: %w", err)
	}

	if len(raw.ABI) < 2 || raw.ABI[0] != '[' {
		return nil, fmt.Errorf("artifact has no valid \"abi\" array: %s", path)
	}
	entries, err := parseABI(raw.ABI)
	if err != nil {
		return nil, fmt.Errorf("parsing artifact ABI: %w", err)
	}
	if err := validateABI(entries, path); err != nil {
		return nil, err
	}

	if len(raw.Bytecode) == 0 {
		return nil, fmt.Errorf("artifact has no bytecode, cannot deploy an interface or abstract contract: %s", path)
	}
	bcHex, err := extractBytecodeHex(raw.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("extracting bytecode from artifact: %w", err)
	}
	bcHex = strings.TrimPrefix(bcHex, "0x")
	if bcHex == "" {
		return nil, fmt.Errorf("artifact bytecode is empty, cannot deploy an interface or abstract contract: %s", path)
	}
	bytecode, err := hex.DecodeString(bcHex)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode hex in artifact: %w", err)
	}

	return &Artifact{Name: raw.ContractName, ABI: entries, Bytecode: bytecode}, nil
}

func parseABI(data []byte) ([]ABIEntry, error) {
	var entries []ABIEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		data = bytes.TrimSpace(data)
		if len(data) > 0 && data[0] == '{' {
			return nil, fmt.Errorf("file is a JSON object, not an ABI array; a Hardhat/Foundry artifact must have an \"abi\" key")
		}
		return nil, fmt.Errorf("invalid ABI JSON: %w", err)
	}
	return entries, nil
}

// extractBytecodeHex handles the two common artifact formats:
//   - Hardhat:  "bytecode": "0x608060..."
//   - Foundry:  "bytecode": {"object": "0x608060..."}
func extractBytecodeHex(raw json.RawMessage) (string, error) {
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return strings.TrimSpace(str), nil
	}

	var obj struct {
		Object string `json:"object"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Object != "" {
		return strings.TrimSpace(obj.Object), nil
	}

	return "", fmt.Errorf("bytecode field is neither a hex string nor a {\"object\":\"0x...\"} object")
}

// validateABI checks that the parsed ABI has at least one function, event
// or constructor.
func validateABI(entries []ABIEntry, path string) error {
	if len(entries) == 0 {
		return fmt.Errorf("ABI is empty: %s", path)
	}
	for _, e := range entries {
		if e.Type == "function" || e.Type == "event" || e.Type == "constructor" {
			return nil
		}
	}
	return fmt.Errorf("ABI has %d entries but none are functions, events or constructors: %s", len(entries), path)
}
