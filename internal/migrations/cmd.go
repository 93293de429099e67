package migrations

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/compose-network/nerd-migrations/configs"
	"github.com/compose-network/nerd-migrations/internal/crypto"
	"github.com/compose-network/nerd-migrations/internal/infra/ethrpc"
	fsjson "github.com/compose-network/nerd-migrations/internal/infra/filesystem/json"
	"github.com/compose-network/nerd-migrations/internal/migrations/chain"
	"github.com/compose-network/nerd-migrations/internal/migrations/domain"
	"github.com/compose-network/nerd-migrations/internal/migrations/orchestrator"
	"github.com/compose-network/nerd-migrations/internal/migrations/output"
	"github.com/compose-network/nerd-migrations/internal/migrations/plans"
	"github.com/compose-network/nerd-migrations/internal/migrations/records"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

var CMD = &cobra.Command{
	Use:   "migrate [migration...]",
	Short: "Deploy and wire contracts, running the named migrations or all of them",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configs.Values.Migrations
		slog.Info("starting migrate command. Validating config")

		if err := cfg.Validate(); err != nil {
			return err
		}

		selected, err := plans.Select(args...)
		if err != nil {
			return err
		}

		privateKey, err := crypto.ParsePrivateKey(cfg.PrivateKey)
		if err != nil {
			return err
		}
		sender, err := crypto.Address(privateKey)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		client, chainID, err := ethrpc.Dial(ctx, cfg.RPCURL)
		if err != nil {
			return err
		}
		defer client.Close()

		networkID := chainID.Uint64()
		if cfg.NetworkID > 0 {
			networkID = uint64(cfg.NetworkID)
		}

		network, err := NewNetworkContext(cfg, networkID, sender)
		if err != nil {
			return err
		}

		reader, writer := fsjson.NewReader(), fsjson.NewWriter()
		artifacts, err := chain.LoadArtifacts(reader, cfg.ArtifactsPath)
		if err != nil {
			return err
		}

		deployer := chain.NewDeployer(client, privateKey, chainID, artifacts, chain.Options{
			GasLimit:            uint64(cfg.GasLimit),
			WaitForConfirmation: cfg.WaitForConfirmation,
		})
		service := NewService(
			orchestrator.New(deployer, records.NewStore(cfg.DeploymentsDir, reader, writer)),
			output.NewGenerator(cfg.DeploymentsDir, chain.RawABIs(artifacts), reader, writer),
		)

		slog.
			With("network_id", networkID).
			With("chain_id", chainID.String()).
			With("sender", sender.Hex()).
			With("migrations", len(selected)).
			Info("config validation successful. Running migrations...")

		deployed, err := service.Run(ctx, selected, network)
		if err != nil {
			return fmt.Errorf("%s: %w", orchestrator.Describe(err), err)
		}

		slog.With("contracts", len(deployed)).Info("migrations completed successfully")

		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered migrations in run order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, m := range plans.All() {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), m.Name); err != nil {
				return err
			}
		}
		return nil
	},
}

var planCmd = &cobra.Command{
	Use:   "plan [migration...]",
	Short: "Validate and print the steps migrations would run, without touching the chain",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configs.Values.Migrations
		if cfg.NetworkID <= 0 {
			return errors.New("migrations.network-id is required to plan without an RPC connection")
		}

		selected, err := plans.Select(args...)
		if err != nil {
			return err
		}

		// The sender only shows up as a placeholder in printed plans.
		network, err := NewNetworkContext(cfg, uint64(cfg.NetworkID), common.Address{})
		if err != nil {
			return err
		}

		return printPlans(cmd, selected, network)
	},
}

func printPlans(cmd *cobra.Command, migrations []plans.Migration, network domain.NetworkContext) error {
	out := cmd.OutOrStdout()
	for _, m := range migrations {
		steps := m.Build(network)
		if err := domain.ValidatePlan(steps); err != nil {
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}

		fmt.Fprintf(out, "%s (network %d)\n", m.Name, network.NetworkID())
		for _, step := range steps {
			fmt.Fprintf(out, "  %s\n", step)
			for _, action := range step.PostActions {
				fmt.Fprintf(out, "    -> %s\n", action)
			}
			for _, field := range step.AuxFields() {
				fmt.Fprintf(out, "    %s = %s\n", field, step.Aux[field])
			}
		}
	}
	return nil
}
