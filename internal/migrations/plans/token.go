package plans

import (
	"github.com/compose-network/nerd-migrations/internal/migrations/domain"
)

func deployBrainz(domain.NetworkContext) []domain.Step {
	return []domain.Step{
		domain.Deploy(ContractNameBrainz, domain.Env(EnvApprover)),
	}
}

// deployFeeApprover hooks a fee approver into the Brainz token recorded for
// this network by 1_deploy_brainz.
func deployFeeApprover(domain.NetworkContext) []domain.Step {
	return []domain.Step{
		domain.Deploy(ContractNameFeeApprover).
			ThenOn(domain.Deployed(ContractNameBrainz), "setShouldTransferChecker", domain.Self()),
	}
}

func deploySnapshot(domain.NetworkContext) []domain.Step {
	return []domain.Step{
		domain.Deploy(ContractNameSnapshot),
	}
}

func deploySample(domain.NetworkContext) []domain.Step {
	return []domain.Step{
		domain.Deploy(ContractNameSampleERC20,
			domain.Literal("Launchpad Test 3"),
			domain.Literal("LPT3"),
			domain.Sender(),
		),
	}
}
