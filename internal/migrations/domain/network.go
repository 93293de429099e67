package domain

import (
	"maps"

	"github.com/ethereum/go-ethereum/common"
)

// MissingOverride is what an override lookup yields for a network the table
// does not map. It is handed to the contract call as is.
const MissingOverride = ""

// NetworkContext is the per-run view of the target network. It is built once
// and never mutated; the maps it was built from are copied.
type NetworkContext struct {
	networkID        uint64
	primaryNetworkID uint64
	sender           common.Address
	env              map[string]any
	overrides        map[string]map[uint64]any
}

func NewNetworkContext(
	networkID,
	primaryNetworkID uint64,
	sender common.Address,
	env map[string]any,
	overrides map[string]map[uint64]any,
) NetworkContext {
	copied := make(map[string]map[uint64]any, len(overrides))
	for table, entries := range overrides {
		copied[table] = maps.Clone(entries)
		if copied[table] == nil {
			copied[table] = map[uint64]any{}
		}
	}

	envCopy := maps.Clone(env)
	if envCopy == nil {
		envCopy = map[string]any{}
	}

	return NetworkContext{
		networkID:        networkID,
		primaryNetworkID: primaryNetworkID,
		sender:           sender,
		env:              envCopy,
		overrides:        copied,
	}
}

func (n NetworkContext) NetworkID() uint64 {
	return n.networkID
}

func (n NetworkContext) DefaultSender() common.Address {
	return n.sender
}

// IsPrimary reports whether the run targets the primary (production) network.
func (n NetworkContext) IsPrimary() bool {
	return n.networkID == n.primaryNetworkID
}

// Env returns an environment value. Empty strings count as absent.
func (n NetworkContext) Env(key string) (any, bool) {
	v, ok := n.env[key]
	if !ok || v == nil {
		return nil, false
	}
	if s, isString := v.(string); isString && s == "" {
		return nil, false
	}

	return v, true
}

// Override looks table up by the network id. declared is false only when the
// table itself is unknown; an unmapped network yields MissingOverride.
func (n NetworkContext) Override(table string) (value any, declared bool) {
	entries, ok := n.overrides[table]
	if !ok {
		return nil, false
	}

	value, ok = entries[n.networkID]
	if !ok {
		return MissingOverride, true
	}

	return value, true
}
