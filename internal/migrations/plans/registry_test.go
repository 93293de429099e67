package plans

import (
	"testing"

	"github.com/compose-network/nerd-migrations/internal/migrations/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func network(id uint64) domain.NetworkContext {
	return domain.NewNetworkContext(id, 1, common.HexToAddress("0x01"), nil, nil)
}

func names(steps []domain.Step) []string {
	out := make([]string, 0, len(steps))
	for _, step := range steps {
		out = append(out, step.Name)
	}
	return out
}

func TestEveryPlanIsValid(t *testing.T) {
	for _, m := range All() {
		for _, networkID := range []uint64{1, 56, 97, 42} {
			require.NoError(t, domain.ValidatePlan(m.Build(network(networkID))), "%s on %d", m.Name, networkID)
		}
	}
}

func TestAllIsOrdered(t *testing.T) {
	var got []string
	for _, m := range All() {
		got = append(got, m.Name)
	}

	assert.Equal(t, []string{
		"1_deploy_brainz",
		"1_deploy_launchpad_bsc",
		"2_deploy_feeApprover",
		"2_deploy_snapshot_eth",
		"3_deploy_bridge_eth",
		"3_deploy_sample",
		"4_deploy_flatallocation",
	}, got)
}

func TestSelect(t *testing.T) {
	selected, err := Select("3_deploy_sample", "1_deploy_brainz")
	require.NoError(t, err)
	require.Len(t, selected, 2)
	assert.Equal(t, "1_deploy_brainz", selected[0].Name)
	assert.Equal(t, "3_deploy_sample", selected[1].Name)

	all, err := Select()
	require.NoError(t, err)
	assert.Len(t, all, len(registry))

	_, err = Select("9_missing")
	require.ErrorContains(t, err, "unknown migration '9_missing'")
}

func TestBridgeOnPrimaryNetwork(t *testing.T) {
	steps := deployBridge(network(1))

	require.Equal(t, []string{ContractNameNerdBridge}, names(steps))
	bridge := steps[0]
	assert.Equal(t, domain.Env(EnvNerdToken), bridge.Args[1])
	assert.Equal(t, domain.Env(EnvNerdToken), bridge.Aux[AuxNerdAddress])
	require.Len(t, bridge.PostActions, 1)
	assert.Equal(t, "self.setAllowedChains(env(bridge-allowed-chains.primary), true)", bridge.PostActions[0].String())
}

func TestBridgeOffPrimaryNetworkDeploysSampleToken(t *testing.T) {
	steps := deployBridge(network(97))

	require.Equal(t, []string{StepNameNerdSampleERC20, ContractNameNerdBridge}, names(steps))
	assert.Equal(t, ContractNameSampleERC20, steps[0].ArtifactName())
	assert.Equal(t, `NerdSampleERC20=SampleERC20(N3RD-SAMPLE, N3RDS, sender)`, steps[0].String())

	bridge := steps[1]
	assert.Equal(t, "NerdBridge(env(approver), ref(NerdSampleERC20))", bridge.String())
	assert.Equal(t, domain.Ref(StepNameNerdSampleERC20), bridge.Aux[AuxNerdAddress])
	assert.Equal(t, "self.setAllowedChains(env(bridge-allowed-chains.non-primary), true)", bridge.PostActions[0].String())
}

func TestLaunchpadWiring(t *testing.T) {
	steps := deployLaunchpad(network(97))

	require.Equal(t, []string{
		ContractNameLaunchPad,
		ContractNameWhiteList,
		ContractNameLinearAllocation,
		ContractNameFlatAllocation,
	}, names(steps))

	assert.Equal(t, "LaunchPad(env(launchpad-approver), 97)", steps[0].String())
	assert.Equal(t, "self.setLaunchPad(ref(LaunchPad))", steps[1].PostActions[0].String())

	allocation := steps[2].PostActions
	require.Len(t, allocation, 2)
	assert.Equal(t, "self.setWhiteListContract(ref(WhiteList))", allocation[0].String())
	assert.Equal(t, "ref(LaunchPad).setUsdContract(override(usdt-contracts))", allocation[1].String())
}

func TestFeeApproverWiresRecordedBrainz(t *testing.T) {
	steps := deployFeeApprover(network(1))

	require.Len(t, steps, 1)
	require.Len(t, steps[0].PostActions, 1)
	assert.Equal(t, "deployed(Brainz).setShouldTransferChecker(self)", steps[0].PostActions[0].String())
}

func TestBridgeAndSampleTokenKeepSeparateRecords(t *testing.T) {
	bridge := deployBridge(network(97))
	sample := deploySample(network(97))

	assert.Equal(t, bridge[0].ArtifactName(), sample[0].ArtifactName())
	assert.NotEqual(t, bridge[0].Name, sample[0].Name)
}
