package domain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Record is the durable result of one completed step. ContractName is the
// step name; Artifact is the compiled contract behind it and is not persisted.
type Record struct {
	ContractName string
	Artifact     string
	NetworkID    uint64
	Address      common.Address
	Aux          map[string]string
}

// RecordKey identifies the slot a record is persisted to.
func (r Record) RecordKey() string {
	return fmt.Sprintf("%s.%d", r.ContractName, r.NetworkID)
}
