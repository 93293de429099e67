package chain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/compose-network/nerd-migrations/internal/infra/filesystem"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Artifact is a compiled contract: its parsed ABI, the raw ABI JSON and the
// creation bytecode.
type Artifact struct {
	ABI      abi.ABI
	RawABI   string
	Bytecode []byte
}

// LoadArtifacts reads a compiled contracts file shaped as
// {"<Contract>": {"abi": [...], "bytecode": "0x..."}}.
func LoadArtifacts(reader filesystem.Reader, path string) (map[string]Artifact, error) {
	var raw map[string]struct {
		ABI      json.RawMessage `json:"abi"`
		Bytecode string          `json:"bytecode"`
	}

	if err := reader.ReadJSON(path, &raw); err != nil {
		return nil, fmt.Errorf("failed to read compiled contracts: %w", err)
	}

	artifacts := make(map[string]Artifact, len(raw))
	for name, contract := range raw {
		parsedABI, err := abi.JSON(strings.NewReader(string(contract.ABI)))
		if err != nil {
			return nil, fmt.Errorf("failed to parse ABI for %s: %w", name, err)
		}

		bytecodeHex := strings.TrimPrefix(contract.Bytecode, "0x")
		if bytecodeHex == "" {
			return nil, fmt.Errorf("contract %s has no bytecode", name)
		}

		artifacts[name] = Artifact{
			ABI:      parsedABI,
			RawABI:   string(contract.ABI),
			Bytecode: common.Hex2Bytes(bytecodeHex),
		}
	}

	return artifacts, nil
}

// RawABIs returns the raw ABI JSON per contract name.
func RawABIs(artifacts map[string]Artifact) map[string]string {
	abis := make(map[string]string, len(artifacts))
	for name, artifact := range artifacts {
		abis[name] = artifact.RawABI
	}
	return abis
}
