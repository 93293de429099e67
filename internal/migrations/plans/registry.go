package plans

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/compose-network/nerd-migrations/internal/migrations/domain"
)

// Migration is a numbered, named plan. Build is evaluated once per run, so
// network-dependent branches are decided before any step executes.
type Migration struct {
	Number int
	Name   string
	Build  func(network domain.NetworkContext) []domain.Step
}

var registry = []Migration{
	{Number: 1, Name: "1_deploy_brainz", Build: deployBrainz},
	{Number: 1, Name: "1_deploy_launchpad_bsc", Build: deployLaunchpad},
	{Number: 2, Name: "2_deploy_feeApprover", Build: deployFeeApprover},
	{Number: 2, Name: "2_deploy_snapshot_eth", Build: deploySnapshot},
	{Number: 3, Name: "3_deploy_bridge_eth", Build: deployBridge},
	{Number: 3, Name: "3_deploy_sample", Build: deploySample},
	{Number: 4, Name: "4_deploy_flatallocation", Build: deployFlatAllocation},
}

// All returns every migration ordered by number, then name.
func All() []Migration {
	all := slices.Clone(registry)
	slices.SortStableFunc(all, func(a, b Migration) int {
		return cmp.Or(cmp.Compare(a.Number, b.Number), cmp.Compare(a.Name, b.Name))
	})
	return all
}

// Select returns the named migrations in registry order. No names selects all.
func Select(names ...string) ([]Migration, error) {
	all := All()
	if len(names) == 0 {
		return all, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		if !slices.ContainsFunc(all, func(m Migration) bool { return m.Name == name }) {
			return nil, fmt.Errorf("unknown migration '%s'", name)
		}
		wanted[name] = true
	}

	selected := make([]Migration, 0, len(wanted))
	for _, m := range all {
		if wanted[m.Name] {
			selected = append(selected, m)
		}
	}

	return selected, nil
}
