package domain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// ContractHandle is a deployed contract the orchestrator can wire.
type ContractHandle interface {
	Address() common.Address
	Call(ctx context.Context, method string, args ...any) error
}
