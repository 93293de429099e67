package orchestrator

import (
	"fmt"

	"github.com/compose-network/nerd-migrations/internal/migrations/domain"
)

// resolver turns symbolic step arguments into concrete values for one step.
type resolver struct {
	step     string
	network  domain.NetworkContext
	deployed map[string]domain.ContractHandle
	store    RecordStore
	deployer ChainDeployer
	self     domain.ContractHandle
}

func (r *resolver) values(args []domain.Arg) ([]any, error) {
	values := make([]any, 0, len(args))
	for _, arg := range args {
		v, err := r.value(arg)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	return values, nil
}

func (r *resolver) value(arg domain.Arg) (any, error) {
	switch arg.Kind {
	case domain.ArgLiteral:
		return arg.Value, nil
	case domain.ArgRef:
		handle, ok := r.deployed[arg.Name]
		if !ok {
			return nil, r.unresolved(arg, "step has not been deployed in this run")
		}
		return handle.Address(), nil
	case domain.ArgOverride:
		v, declared := r.network.Override(arg.Name)
		if !declared {
			return nil, r.unresolved(arg, "override table is not declared")
		}
		return v, nil
	case domain.ArgEnv:
		v, ok := r.network.Env(arg.Name)
		if !ok {
			return nil, r.unresolved(arg, fmt.Sprintf("environment value is missing for network %d", r.network.NetworkID()))
		}
		return v, nil
	case domain.ArgDeployed:
		record, err := r.store.Load(arg.Name, r.network.NetworkID())
		if err != nil {
			return nil, r.unresolved(arg, fmt.Sprintf("no deployment record: %v", err))
		}
		return record.Address, nil
	case domain.ArgSender:
		return r.network.DefaultSender(), nil
	case domain.ArgSelf:
		if r.self == nil {
			return nil, r.unresolved(arg, "step has not been deployed yet")
		}
		return r.self.Address(), nil
	case domain.ArgList:
		return r.values(arg.Items)
	default:
		return nil, r.unresolved(arg, "unknown argument kind")
	}
}

// target resolves the contract a wiring call is sent to.
func (r *resolver) target(arg domain.Arg) (domain.ContractHandle, error) {
	switch arg.Kind {
	case domain.ArgSelf:
		if r.self == nil {
			return nil, r.unresolved(arg, "step has not been deployed yet")
		}
		return r.self, nil
	case domain.ArgRef:
		handle, ok := r.deployed[arg.Name]
		if !ok {
			return nil, r.unresolved(arg, "step has not been deployed in this run")
		}
		return handle, nil
	case domain.ArgDeployed:
		record, err := r.store.Load(arg.Name, r.network.NetworkID())
		if err != nil {
			return nil, r.unresolved(arg, fmt.Sprintf("no deployment record: %v", err))
		}
		handle, err := r.deployer.At(arg.Name, record.Address)
		if err != nil {
			return nil, r.unresolved(arg, fmt.Sprintf("cannot bind to recorded contract: %v", err))
		}
		return handle, nil
	default:
		return nil, r.unresolved(arg, "wiring target must be self, a step reference or a deployed contract")
	}
}

// aux resolves to their string form the aux fields that do, or do not,
// depend on the step's own contract.
func (r *resolver) aux(step domain.Step, usesSelf bool) (map[string]string, error) {
	var fields map[string]string
	for _, field := range step.AuxFields() {
		arg := step.Aux[field]
		if arg.UsesSelf() != usesSelf {
			continue
		}

		v, err := r.value(arg)
		if err != nil {
			return nil, err
		}
		if fields == nil {
			fields = make(map[string]string, len(step.Aux))
		}
		fields[field] = formatValue(v)
	}

	return fields, nil
}

func (r *resolver) unresolved(arg domain.Arg, reason string) error {
	return &domain.UnresolvedReferenceError{Step: r.step, Reference: arg.String(), Reason: reason}
}

type hexer interface {
	Hex() string
}

func formatValue(v any) string {
	if h, ok := v.(hexer); ok {
		return h.Hex()
	}
	return fmt.Sprintf("%v", v)
}
