package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/compose-network/nerd-migrations/internal/infra/filesystem"
	"github.com/compose-network/nerd-migrations/internal/migrations/domain"
	"gopkg.in/yaml.v3"
)

// Generator maintains <dir>/<network>.output.yaml, the summary of every
// contract deployed to a network, for tooling that talks to them afterwards.
type Generator struct {
	dir    string
	abis   map[string]string
	reader filesystem.Reader
	writer filesystem.Writer
}

func NewGenerator(dir string, abis map[string]string, reader filesystem.Reader, writer filesystem.Writer) *Generator {
	return &Generator{
		dir:    dir,
		abis:   abis,
		reader: reader,
		writer: writer,
	}
}

func (g *Generator) Path(networkID uint64) string {
	return filepath.Join(g.dir, fmt.Sprintf("%d.output.yaml", networkID))
}

// Generate merges records into the network's summary. Contracts deployed by
// earlier runs stay listed; a contract deployed again is replaced.
func (g *Generator) Generate(networkID uint64, records []domain.Record) error {
	model, err := g.load(networkID)
	if err != nil {
		return err
	}

	for _, record := range records {
		contract := ContractConfig{
			Address: record.Address.Hex(),
			Aux:     record.Aux,
		}
		if raw, ok := g.abis[artifactName(record)]; ok {
			contract.ABI = SingleQuotedString(compactJSON(raw))
		}
		model.Contracts[strings.ToLower(record.ContractName)] = contract
	}

	data, err := yaml.Marshal(model)
	if err != nil {
		return fmt.Errorf("could not marshal output model: %w", err)
	}

	if err := g.writer.WriteBytes(g.Path(networkID), data); err != nil {
		return fmt.Errorf("could not write output file: %w", err)
	}

	return nil
}

func (g *Generator) load(networkID uint64) (*Model, error) {
	model := &Model{NetworkID: networkID}

	data, err := g.reader.ReadBytes(g.Path(networkID))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("could not read output file: %w", err)
	default:
		if err := yaml.Unmarshal(data, model); err != nil {
			return nil, fmt.Errorf("could not parse output file %s: %w", g.Path(networkID), err)
		}
		model.NetworkID = networkID
	}

	if model.Contracts == nil {
		model.Contracts = make(map[string]ContractConfig)
	}

	return model, nil
}

func artifactName(record domain.Record) string {
	if record.Artifact != "" {
		return record.Artifact
	}
	return record.ContractName
}

func compactJSON(jsonStr string) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(jsonStr)); err != nil {
		return jsonStr
	}
	return buf.String()
}
