package migrations

import (
	"github.com/compose-network/nerd-migrations/configs"
	"github.com/compose-network/nerd-migrations/internal/migrations/domain"
	"github.com/compose-network/nerd-migrations/internal/migrations/plans"
	"github.com/ethereum/go-ethereum/common"
)

// NewNetworkContext maps the migrations configuration onto the values and
// tables the plans read.
func NewNetworkContext(cfg configs.Migrations, networkID uint64, sender common.Address) (domain.NetworkContext, error) {
	usdtContracts, err := cfg.USDTContractsByNetwork()
	if err != nil {
		return domain.NetworkContext{}, err
	}

	env := map[string]any{
		plans.EnvApprover:          cfg.ApproverAddress,
		plans.EnvLaunchpadApprover: cfg.LaunchpadApproverAddress,
		plans.EnvNerdToken:         cfg.NerdTokenAddress,
	}
	if len(cfg.Bridge.AllowedChainsPrimary) > 0 {
		env[plans.EnvBridgeAllowedChainsPrimary] = cfg.Bridge.AllowedChainsPrimary
	}
	if len(cfg.Bridge.AllowedChainsNonPrimary) > 0 {
		env[plans.EnvBridgeAllowedChainsNonPrimary] = cfg.Bridge.AllowedChainsNonPrimary
	}

	overrides := map[string]map[uint64]any{
		plans.OverrideUSDTContracts: usdtContracts,
	}

	return domain.NewNetworkContext(networkID, uint64(cfg.PrimaryNetworkID), sender, env, overrides), nil
}
