package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/compose-network/nerd-migrations/internal/logger"
	"github.com/compose-network/nerd-migrations/internal/migrations/domain"
	"github.com/ethereum/go-ethereum/common"
)

type (
	// ChainDeployer deploys contracts and binds to ones already on chain.
	ChainDeployer interface {
		Deploy(ctx context.Context, contractName string, args ...any) (domain.ContractHandle, error)
		At(contractName string, address common.Address) (domain.ContractHandle, error)
	}

	// RecordStore persists one record per (contract, network) pair.
	RecordStore interface {
		Save(record domain.Record) error
		Load(contractName string, networkID uint64) (domain.Record, error)
	}

	/*
		Orchestrator runs a plan of steps against one network:
		  - resolves each step's arguments against the addresses deployed so far
		  - deploys the step's contract and runs its wiring calls in order
		  - persists a record for the step before moving to the next one
	*/
	Orchestrator struct {
		deployer ChainDeployer
		store    RecordStore
		logger   *slog.Logger
	}
)

func New(deployer ChainDeployer, store RecordStore) *Orchestrator {
	return &Orchestrator{
		deployer: deployer,
		store:    store,
		logger:   logger.Named("orchestrator"),
	}
}

// Run executes steps sequentially and returns one record per step in
// declared order. The first unresolved reference, deployment failure or
// wiring failure stops the run; steps completed before it keep their
// on-chain effects and records. Failing to persist a record is only logged.
func (o *Orchestrator) Run(ctx context.Context, steps []domain.Step, network domain.NetworkContext) ([]domain.Record, error) {
	if err := domain.ValidatePlan(steps); err != nil {
		return nil, err
	}

	log := o.logger.With("network_id", network.NetworkID())
	log.With("steps", len(steps)).Info("starting deployment run")

	deployed := make(map[string]domain.ContractHandle, len(steps))
	records := make([]domain.Record, 0, len(steps))

	for _, step := range steps {
		record, err := o.runStep(ctx, step, network, deployed)
		if err != nil {
			log.With("step", step.Name).With("err", err.Error()).Error("deployment run aborted")
			return records, err
		}

		records = append(records, record)
	}

	log.With("records", len(records)).Info("deployment run completed")

	return records, nil
}

func (o *Orchestrator) runStep(ctx context.Context, step domain.Step, network domain.NetworkContext, deployed map[string]domain.ContractHandle) (domain.Record, error) {
	log := o.logger.With("step", step.Name)
	r := &resolver{
		step:     step.Name,
		network:  network,
		deployed: deployed,
		store:    o.store,
		deployer: o.deployer,
	}

	args, err := r.values(step.Args)
	if err != nil {
		return domain.Record{}, err
	}

	// Aux fields that do not name the step's own contract are settled
	// before anything reaches the chain.
	aux, err := r.aux(step, false)
	if err != nil {
		return domain.Record{}, err
	}

	log.With("args", len(args)).With("artifact", step.ArtifactName()).Debug("deploying contract")
	handle, err := o.deployer.Deploy(ctx, step.ArtifactName(), args...)
	if err != nil {
		return domain.Record{}, &domain.DeploymentFailure{Step: step.Name, Cause: err}
	}

	deployed[step.Name] = handle
	r.self = handle
	log.Info("deployed", "contract", step.Name, "address", handle.Address().Hex())

	for _, action := range step.PostActions {
		if err := o.wire(ctx, r, step, action); err != nil {
			return domain.Record{}, err
		}
	}

	selfAux, err := r.aux(step, true)
	if err != nil {
		return domain.Record{}, err
	}
	for field, value := range selfAux {
		if aux == nil {
			aux = make(map[string]string, len(selfAux))
		}
		aux[field] = value
	}

	record := domain.Record{
		ContractName: step.Name,
		Artifact:     step.ArtifactName(),
		NetworkID:    network.NetworkID(),
		Address:      handle.Address(),
		Aux:          aux,
	}

	if err := o.store.Save(record); err != nil {
		failure := &domain.PersistenceFailure{Step: step.Name, Key: record.RecordKey(), Cause: err}
		log.With("err", failure.Error()).Warn("record not persisted, on-chain deployment is kept")
	}

	return record, nil
}

func (o *Orchestrator) wire(ctx context.Context, r *resolver, step domain.Step, action domain.PostAction) error {
	target, err := r.target(action.Target)
	if err != nil {
		return err
	}

	args, err := r.values(action.Args)
	if err != nil {
		return err
	}

	o.logger.
		With("step", step.Name).
		With("action", action.String()).
		With("target", target.Address().Hex()).
		Info("running wiring call")

	if err := target.Call(ctx, action.Method, args...); err != nil {
		return &domain.WiringFailure{Step: step.Name, Action: action.String(), Cause: err}
	}

	return nil
}

// Describe renders the fatal failures Run returns for operators.
// Persistence failures never abort a run and are only logged.
func Describe(err error) string {
	var (
		refErr    *domain.UnresolvedReferenceError
		deployErr *domain.DeploymentFailure
		wiringErr *domain.WiringFailure
	)

	switch {
	case errors.As(err, &refErr):
		return fmt.Sprintf("configuration error in step '%s'", refErr.Step)
	case errors.As(err, &deployErr):
		return fmt.Sprintf("deployment of '%s' failed", deployErr.Step)
	case errors.As(err, &wiringErr):
		return fmt.Sprintf("wiring of '%s' failed at %s", wiringErr.Step, wiringErr.Action)
	case errors.Is(err, domain.ErrInvalidPlan):
		return "invalid plan"
	default:
		return "unexpected error"
	}
}
