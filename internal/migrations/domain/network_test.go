package domain

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkContextOverride(t *testing.T) {
	usdt := map[uint64]any{
		97: "0x8cfD063033A302E96048e7c01aAe7C67E00D544f",
		1:  "",
	}

	tests := []struct {
		name         string
		networkID    uint64
		table        string
		wantValue    any
		wantDeclared bool
	}{
		{name: "mapped network", networkID: 97, table: "usdt", wantValue: "0x8cfD063033A302E96048e7c01aAe7C67E00D544f", wantDeclared: true},
		{name: "mapped to empty", networkID: 1, table: "usdt", wantValue: "", wantDeclared: true},
		{name: "unmapped network yields sentinel", networkID: 1337, table: "usdt", wantValue: MissingOverride, wantDeclared: true},
		{name: "unknown table", networkID: 97, table: "dai", wantValue: nil, wantDeclared: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			network := NewNetworkContext(tt.networkID, 1, common.Address{}, nil, map[string]map[uint64]any{"usdt": usdt})

			value, declared := network.Override(tt.table)
			assert.Equal(t, tt.wantDeclared, declared)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func TestNetworkContextIsImmutable(t *testing.T) {
	env := map[string]any{"approver": "0x01"}
	overrides := map[string]map[uint64]any{"usdt": {97: "0xaa"}}

	network := NewNetworkContext(97, 1, common.HexToAddress("0x02"), env, overrides)

	env["approver"] = "0xff"
	overrides["usdt"][97] = "0xbb"
	overrides["dai"] = map[uint64]any{97: "0xcc"}

	approver, ok := network.Env("approver")
	require.True(t, ok)
	assert.Equal(t, "0x01", approver)

	usdt, declared := network.Override("usdt")
	require.True(t, declared)
	assert.Equal(t, "0xaa", usdt)

	_, declared = network.Override("dai")
	assert.False(t, declared)
}

func TestNetworkContextEnv(t *testing.T) {
	network := NewNetworkContext(56, 1, common.Address{}, map[string]any{
		"approver": "",
		"chains":   []uint64{56, 1},
		"nothing":  nil,
	}, nil)

	_, ok := network.Env("approver")
	assert.False(t, ok, "empty strings count as missing")

	_, ok = network.Env("nothing")
	assert.False(t, ok)

	_, ok = network.Env("absent")
	assert.False(t, ok)

	chains, ok := network.Env("chains")
	require.True(t, ok)
	assert.Equal(t, []uint64{56, 1}, chains)
}

func TestNetworkContextIsPrimary(t *testing.T) {
	assert.True(t, NewNetworkContext(1, 1, common.Address{}, nil, nil).IsPrimary())
	assert.False(t, NewNetworkContext(97, 1, common.Address{}, nil, nil).IsPrimary())
}
