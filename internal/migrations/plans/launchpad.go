package plans

import (
	"github.com/compose-network/nerd-migrations/internal/migrations/domain"
)

func deployLaunchpad(network domain.NetworkContext) []domain.Step {
	networkID := domain.Literal(network.NetworkID())

	return []domain.Step{
		domain.Deploy(ContractNameLaunchPad, domain.Env(EnvLaunchpadApprover), networkID),
		domain.Deploy(ContractNameWhiteList, domain.Env(EnvLaunchpadApprover), networkID).
			Then("setLaunchPad", domain.Ref(ContractNameLaunchPad)),
		domain.Deploy(ContractNameLinearAllocation).
			Then("setWhiteListContract", domain.Ref(ContractNameWhiteList)).
			// The table maps some networks to "" and leaves others out; both are
			// sent to the contract unchanged.
			ThenOn(domain.Ref(ContractNameLaunchPad), "setUsdContract", domain.Override(OverrideUSDTContracts)),
		domain.Deploy(ContractNameFlatAllocation),
	}
}

func deployFlatAllocation(domain.NetworkContext) []domain.Step {
	return []domain.Step{
		domain.Deploy(ContractNameFlatAllocation),
	}
}
