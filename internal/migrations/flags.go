package migrations

import (
	"github.com/spf13/viper"
)

// flagDef defines a command-line flag with its configuration.
type (
	flagType interface {
		string | int | bool
	}

	flagDef[T flagType] struct {
		name         string
		viperKey     string
		defaultValue T
		description  string
	}
)

var (
	stringFlags = []flagDef[string]{
		// Chain connection
		{"rpc-url", "migrations.rpc-url", "", "RPC URL of the target network"},
		{"private-key", "migrations.private-key", "", "Deployer private key"},

		// Environment values
		{"approver-address", "migrations.approver-address", "", "Approver address passed to Brainz and NerdBridge"},
		{"launchpad-approver-address", "migrations.launchpad-approver-address", "", "Approver address passed to LaunchPad and WhiteList"},
		{"nerd-token-address", "migrations.nerd-token-address", "", "N3RD token bridged on the primary network"},

		// Files
		{"deployments-dir", "migrations.deployments-dir", "", "Directory holding deployment records and output summaries"},
		{"artifacts-path", "migrations.artifacts-path", "", "Compiled contracts JSON (abi and bytecode per contract)"},
	}

	intFlags = []flagDef[int]{
		{"network-id", "migrations.network-id", 0, "Network id records are keyed by (default: the RPC chain id)"},
		{"primary-network-id", "migrations.primary-network-id", 0, "Network the real N3RD token lives on"},
		{"gas-limit", "migrations.gas-limit", 0, "Gas limit for every transaction"},
	}

	boolFlags = []flagDef[bool]{
		{"wait-for-confirmation", "migrations.wait-for-confirmation", true, "Wait for each transaction to be mined"},
	}
)

func init() {
	if err := declareFlags(stringFlags); err != nil {
		panic(err)
	}
	if err := declareFlags(intFlags); err != nil {
		panic(err)
	}
	if err := declareFlags(boolFlags); err != nil {
		panic(err)
	}
	CMD.AddCommand(listCmd)
	CMD.AddCommand(planCmd)
}

// declareFlags declares multiple flags and binds them to viper configuration keys.
func declareFlags[T flagType](flags []flagDef[T]) error {
	for _, flag := range flags {
		if err := declareFlag(flag.name, flag.viperKey, flag.defaultValue, flag.description); err != nil {
			return err
		}
	}
	return nil
}

// declareFlag declares a persistent flag so that plan sees the same settings as a run.
func declareFlag[T flagType](flagName, viperKey string, defaultValue T, description string) error {
	var zero T
	switch any(zero).(type) {
	case string:
		CMD.PersistentFlags().String(flagName, any(defaultValue).(string), description)
	case int:
		CMD.PersistentFlags().Int(flagName, any(defaultValue).(int), description)
	case bool:
		CMD.PersistentFlags().Bool(flagName, any(defaultValue).(bool), description)
	}
	return viper.BindPFlag(viperKey, CMD.PersistentFlags().Lookup(flagName))
}
