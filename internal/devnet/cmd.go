package devnet

import (
	"fmt"
	"log/slog"

	"github.com/compose-network/nerd-migrations/configs"
	"github.com/compose-network/nerd-migrations/internal/infra/docker"
	"github.com/compose-network/nerd-migrations/internal/infra/ethrpc"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var CMD = &cobra.Command{
	Use:   "devnet",
	Short: "Commands for running a local anvil chain to rehearse migrations against",
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the local chain",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configs.Values.Devnet
		if err := cfg.Validate(); err != nil {
			return err
		}

		client, err := docker.New()
		if err != nil {
			return fmt.Errorf("failed to create docker client: %w", err)
		}
		defer client.Close()

		rpcURL, err := NewService(client, ethrpc.WaitForRPC).Start(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("error occurred starting devnet: %w", err)
		}

		slog.With("rpc_url", rpcURL).With("chain_id", cfg.ChainID).Info("devnet started")

		return nil
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop and remove the local chain",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := docker.New()
		if err != nil {
			return fmt.Errorf("failed to create docker client: %w", err)
		}
		defer client.Close()

		if err := NewService(client, ethrpc.WaitForRPC).Stop(cmd.Context(), configs.Values.Devnet); err != nil {
			return fmt.Errorf("error occurred stopping devnet: %w", err)
		}

		slog.Info("devnet stopped")

		return nil
	},
}

func init() {
	declareStringFlag("image", "devnet.image", "", "Docker image providing anvil")
	declareStringFlag("container-name", "devnet.container-name", "", "Devnet container name")
	declareIntFlag("chain-id", "devnet.chain-id", 0, "Chain id anvil serves")
	declareIntFlag("rpc-port", "devnet.rpc-port", 0, "Host port the RPC is published on")

	CMD.AddCommand(startCmd)
	CMD.AddCommand(stopCmd)
}

func declareStringFlag(name, key, defaultValue, description string) {
	CMD.PersistentFlags().String(name, defaultValue, description)
	if err := viper.BindPFlag(key, CMD.PersistentFlags().Lookup(name)); err != nil {
		panic(err)
	}
}

func declareIntFlag(name, key string, defaultValue int, description string) {
	CMD.PersistentFlags().Int(name, defaultValue, description)
	if err := viper.BindPFlag(key, CMD.PersistentFlags().Lookup(name)); err != nil {
		panic(err)
	}
}
