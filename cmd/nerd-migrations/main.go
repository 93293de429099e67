package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/compose-network/nerd-migrations/configs"
	"github.com/compose-network/nerd-migrations/internal/devnet"
	"github.com/compose-network/nerd-migrations/internal/logger"
	"github.com/compose-network/nerd-migrations/internal/migrations"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const appName = "nerd-migrations"

// Environment variables read directly, as the deployment scripts always have.
var envBindings = map[string]string{
	"migrations.approver-address": "APPROVER_ADDRESS",
	"migrations.private-key":      "PRIVATE_KEY",
	"migrations.rpc-url":          "RPC_URL",
}

var rootCmd = &cobra.Command{
	Use:          appName,
	Short:        "Deploy and wire the N3RD contract suite",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Initialize(slog.LevelInfo)

		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.Join(err, errors.New("error reading .env file"))
		}

		if err := configs.LoadDefaults(viper.GetViper()); err != nil {
			return err
		}

		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		if execPath, err := os.Executable(); err == nil {
			execDir := filepath.Dir(execPath)
			viper.AddConfigPath(execDir)
		}
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")

		// A config file only overrides the embedded defaults; flags and
		// environment variables can provide everything else
		if err := viper.MergeInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				slog.Debug("no config file found, will rely on defaults, flags and environment")
			} else {
				const errMsg = "error reading config file"
				slog.With("err", err.Error()).Error(errMsg)
				return errors.Join(err, errors.New(errMsg))
			}
		} else {
			slog.With("config_file", viper.ConfigFileUsed()).Debug("config file loaded")
		}

		for key, env := range envBindings {
			if err := viper.BindEnv(key, env); err != nil {
				return err
			}
		}

		if err := viper.Unmarshal(&configs.Values); err != nil {
			const errMsg = "unable to decode application config"
			slog.With("err", err.Error()).Error(errMsg)
			return errors.Join(err, errors.New(errMsg))
		}

		level, err := logger.ParseLevel(configs.Values.LogLevel)
		if err != nil {
			return err
		}
		logger.Initialize(level)

		return nil
	},
}

func main() {
	rootCmd.AddCommand(migrations.CMD)
	rootCmd.AddCommand(devnet.CMD)

	if err := rootCmd.Execute(); err != nil {
		slog.With("err", err.Error()).Error("failed to execute root command")
		os.Exit(1)
	}
}
