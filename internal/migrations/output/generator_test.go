package output

import (
	"os"
	"path/filepath"
	"testing"

	fsjson "github.com/compose-network/nerd-migrations/internal/infra/filesystem/json"
	"github.com/compose-network/nerd-migrations/internal/migrations/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newGenerator(dir string, abis map[string]string) *Generator {
	return NewGenerator(dir, abis, fsjson.NewReader(), fsjson.NewWriter())
}

func readModel(t *testing.T, path string) Model {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var model Model
	require.NoError(t, yaml.Unmarshal(raw, &model))
	return model
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	abis := map[string]string{
		"NerdBridge":  `[ {"type": "function", "name": "setAllowedChains"} ]`,
		"SampleERC20": `[]`,
	}
	generator := newGenerator(dir, abis)

	bridge := common.HexToAddress("0x00000000000000000000000000000000000000b2")
	sample := common.HexToAddress("0x00000000000000000000000000000000000000a1")
	records := []domain.Record{
		{ContractName: "NerdSampleERC20", Artifact: "SampleERC20", NetworkID: 97, Address: sample},
		{ContractName: "NerdBridge", NetworkID: 97, Address: bridge, Aux: map[string]string{"nerdaddress": sample.Hex()}},
		{ContractName: "Snapshot", NetworkID: 97, Address: common.HexToAddress("0x05")},
	}

	require.NoError(t, generator.Generate(97, records))

	path := filepath.Join(dir, "97.output.yaml")
	assert.Equal(t, path, generator.Path(97))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `abi: '[{"type":"function","name":"setAllowedChains"}]'`)

	got := readModel(t, path)
	assert.Equal(t, uint64(97), got.NetworkID)
	require.Len(t, got.Contracts, 3)
	assert.Equal(t, bridge.Hex(), got.Contracts["nerdbridge"].Address)
	assert.Equal(t, sample.Hex(), got.Contracts["nerdbridge"].Aux["nerdaddress"])
	assert.Equal(t, sample.Hex(), got.Contracts["nerdsampleerc20"].Address)
	assert.Equal(t, SingleQuotedString("[]"), got.Contracts["nerdsampleerc20"].ABI)
	assert.Empty(t, got.Contracts["snapshot"].ABI)
}

func TestGenerateKeepsContractsFromEarlierRuns(t *testing.T) {
	dir := t.TempDir()
	generator := newGenerator(dir, nil)

	brainz := common.HexToAddress("0x00000000000000000000000000000000000000b1")
	oldFee := common.HexToAddress("0x00000000000000000000000000000000000000f1")
	newFee := common.HexToAddress("0x00000000000000000000000000000000000000f2")

	require.NoError(t, generator.Generate(97, []domain.Record{
		{ContractName: "Brainz", NetworkID: 97, Address: brainz},
		{ContractName: "FeeApprover", NetworkID: 97, Address: oldFee},
	}))
	require.NoError(t, generator.Generate(97, []domain.Record{
		{ContractName: "FeeApprover", NetworkID: 97, Address: newFee},
	}))

	got := readModel(t, generator.Path(97))
	require.Len(t, got.Contracts, 2)
	assert.Equal(t, brainz.Hex(), got.Contracts["brainz"].Address)
	assert.Equal(t, newFee.Hex(), got.Contracts["feeapprover"].Address)
}

func TestGenerateRejectsCorruptSummary(t *testing.T) {
	dir := t.TempDir()
	generator := newGenerator(dir, nil)
	require.NoError(t, os.WriteFile(generator.Path(97), []byte("contracts: [unterminated"), 0644))

	err := generator.Generate(97, []domain.Record{{ContractName: "Brainz", NetworkID: 97}})
	require.ErrorContains(t, err, "could not parse output file")
}

func TestCompactJSONFallsBackOnInvalidInput(t *testing.T) {
	assert.Equal(t, "not json", compactJSON("not json"))
	assert.Equal(t, `{"a":1}`, compactJSON("{ \"a\" : 1 }"))
}
