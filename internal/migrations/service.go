package migrations

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/compose-network/nerd-migrations/internal/logger"
	"github.com/compose-network/nerd-migrations/internal/migrations/domain"
	"github.com/compose-network/nerd-migrations/internal/migrations/plans"
)

type (
	planRunner interface {
		Run(ctx context.Context, steps []domain.Step, network domain.NetworkContext) ([]domain.Record, error)
	}
	outputGenerator interface {
		Generate(networkID uint64, records []domain.Record) error
	}

	// Service runs a list of migrations one after another against a single network
	Service struct {
		runner          planRunner
		outputGenerator outputGenerator
		logger          *slog.Logger
	}
)

func NewService(runner planRunner, outputGenerator outputGenerator) *Service {
	return &Service{
		runner:          runner,
		outputGenerator: outputGenerator,
		logger:          logger.Named("migrations_service"),
	}
}

// Run executes migrations in order and stops at the first one that fails.
// The output summary is written for whatever was deployed, even after a failure.
func (s *Service) Run(ctx context.Context, migrations []plans.Migration, network domain.NetworkContext) ([]domain.Record, error) {
	var all []domain.Record
	defer func() {
		s.writeOutput(network.NetworkID(), all)
	}()

	for _, m := range migrations {
		log := s.logger.With("migration", m.Name)
		log.Info("running migration")

		records, err := s.runner.Run(ctx, m.Build(network), network)
		all = append(all, records...)
		if err != nil {
			return all, fmt.Errorf("migration %s: %w", m.Name, err)
		}

		log.With("contracts", len(records)).Info("migration completed")
	}

	return all, nil
}

func (s *Service) writeOutput(networkID uint64, records []domain.Record) {
	if len(records) == 0 {
		return
	}

	if err := s.outputGenerator.Generate(networkID, records); err != nil {
		s.logger.With("err", err.Error()).Warn("failed to write output summary")
	}
}
