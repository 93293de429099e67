package plans

import (
	"github.com/compose-network/nerd-migrations/internal/migrations/domain"
)

// deployBridge deploys the NerdBridge. Off the primary network a sample
// token stands in for N3RD.
func deployBridge(network domain.NetworkContext) []domain.Step {
	var steps []domain.Step

	nerd := domain.Env(EnvNerdToken)
	allowedChains := domain.Env(EnvBridgeAllowedChainsPrimary)

	if !network.IsPrimary() {
		steps = append(steps, domain.DeployAs(StepNameNerdSampleERC20, ContractNameSampleERC20,
			domain.Literal("N3RD-SAMPLE"),
			domain.Literal("N3RDS"),
			domain.Sender(),
		))
		nerd = domain.Ref(StepNameNerdSampleERC20)
		allowedChains = domain.Env(EnvBridgeAllowedChainsNonPrimary)
	}

	steps = append(steps,
		domain.Deploy(ContractNameNerdBridge, domain.Env(EnvApprover), nerd).
			Then("setAllowedChains", allowedChains, domain.Literal(true)).
			WithAux(AuxNerdAddress, nerd),
	)

	return steps
}
