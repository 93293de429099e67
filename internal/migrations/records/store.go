package records

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/compose-network/nerd-migrations/internal/infra/filesystem"
	"github.com/compose-network/nerd-migrations/internal/logger"
	"github.com/compose-network/nerd-migrations/internal/migrations/domain"
	"github.com/ethereum/go-ethereum/common"
)

const addressField = "address"

// Store keeps one JSON file per (contract, network) pair under dir, named
// <contract>.<network>.address.json. The file holds a flat object with the
// address and any aux fields.
type Store struct {
	dir    string
	reader filesystem.Reader
	writer filesystem.Writer
	logger *slog.Logger
}

func NewStore(dir string, reader filesystem.Reader, writer filesystem.Writer) *Store {
	return &Store{
		dir:    dir,
		reader: reader,
		writer: writer,
		logger: logger.Named("record_store"),
	}
}

// Path returns the file a record for contractName on networkID lives in.
func (s *Store) Path(contractName string, networkID uint64) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s.%d.address.json", contractName, networkID))
}

// Save writes record, replacing any previous record for the same key.
func (s *Store) Save(record domain.Record) error {
	if _, clash := record.Aux[addressField]; clash {
		return fmt.Errorf("aux field '%s' is reserved", addressField)
	}

	payload := make(map[string]string, len(record.Aux)+1)
	for field, value := range record.Aux {
		payload[field] = value
	}
	payload[addressField] = record.Address.Hex()

	path := s.Path(record.ContractName, record.NetworkID)
	if err := s.writer.WriteJSON(path, payload); err != nil {
		return fmt.Errorf("failed to write record %s: %w", path, err)
	}

	s.logger.With("path", path).Debug("record written")

	return nil
}

// Load reads the record for contractName on networkID.
func (s *Store) Load(contractName string, networkID uint64) (domain.Record, error) {
	path := s.Path(contractName, networkID)

	var payload map[string]string
	if err := s.reader.ReadJSON(path, &payload); err != nil {
		return domain.Record{}, fmt.Errorf("failed to read record %s: %w", path, err)
	}

	address, ok := payload[addressField]
	if !ok || !common.IsHexAddress(address) {
		return domain.Record{}, fmt.Errorf("record %s has no valid address", path)
	}
	delete(payload, addressField)

	record := domain.Record{
		ContractName: contractName,
		NetworkID:    networkID,
		Address:      common.HexToAddress(address),
	}
	if len(payload) > 0 {
		record.Aux = payload
	}

	return record, nil
}
