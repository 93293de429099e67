package configs

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
)

var Values Config

type (
	Config struct {
		LogLevel   string     `mapstructure:"log-level"`
		Migrations Migrations `mapstructure:"migrations"`
		Devnet     Devnet     `mapstructure:"devnet"`
	}

	Migrations struct {
		RPCURL                   string            `mapstructure:"rpc-url"`
		PrivateKey               string            `mapstructure:"private-key"`
		NetworkID                int               `mapstructure:"network-id"`
		PrimaryNetworkID         int               `mapstructure:"primary-network-id"`
		ApproverAddress          string            `mapstructure:"approver-address"`
		LaunchpadApproverAddress string            `mapstructure:"launchpad-approver-address"`
		NerdTokenAddress         string            `mapstructure:"nerd-token-address"`
		DeploymentsDir           string            `mapstructure:"deployments-dir"`
		ArtifactsPath            string            `mapstructure:"artifacts-path"`
		GasLimit                 int               `mapstructure:"gas-limit"`
		WaitForConfirmation      bool              `mapstructure:"wait-for-confirmation"`
		USDTContracts            map[string]string `mapstructure:"usdt-contracts"`
		Bridge                   Bridge            `mapstructure:"bridge"`
	}

	Bridge struct {
		AllowedChainsPrimary    []int `mapstructure:"allowed-chains-primary"`
		AllowedChainsNonPrimary []int `mapstructure:"allowed-chains-non-primary"`
	}

	Devnet struct {
		Image         string `mapstructure:"image"`
		ContainerName string `mapstructure:"container-name"`
		ChainID       int    `mapstructure:"chain-id"`
		RPCPort       int    `mapstructure:"rpc-port"`
	}
)

// Validate checks the settings needed to talk to a chain and build plans.
// The approver address is not checked here: only some migrations use it and
// the orchestrator reports it per step when it is missing.
func (c *Migrations) Validate() error {
	var errs []error

	if c.RPCURL == "" {
		errs = append(errs, errors.New("migrations.rpc-url is required"))
	}
	if c.PrivateKey == "" {
		errs = append(errs, errors.New("migrations.private-key is required"))
	}
	if c.NetworkID < 0 {
		errs = append(errs, errors.New("migrations.network-id must not be negative"))
	}
	if c.PrimaryNetworkID <= 0 {
		errs = append(errs, errors.New("migrations.primary-network-id is required"))
	}
	if c.DeploymentsDir == "" {
		errs = append(errs, errors.New("migrations.deployments-dir is required"))
	}
	if c.ArtifactsPath == "" {
		errs = append(errs, errors.New("migrations.artifacts-path is required"))
	}
	if c.GasLimit <= 0 {
		errs = append(errs, errors.New("migrations.gas-limit must be positive"))
	}

	for name, address := range map[string]string{
		"approver-address":           c.ApproverAddress,
		"launchpad-approver-address": c.LaunchpadApproverAddress,
		"nerd-token-address":         c.NerdTokenAddress,
	} {
		if address != "" && !common.IsHexAddress(address) {
			errs = append(errs, fmt.Errorf("migrations.%s is not a valid address: '%s'", name, address))
		}
	}

	if _, err := c.USDTContractsByNetwork(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("migrations configuration validation failed: %w", errors.Join(errs...))
	}

	return nil
}

// USDTContractsByNetwork returns the usdt-contracts table keyed by network id.
// Empty entries are kept: they are part of the table as declared.
func (c *Migrations) USDTContractsByNetwork() (map[uint64]any, error) {
	table := make(map[uint64]any, len(c.USDTContracts))
	for key, address := range c.USDTContracts {
		networkID, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("migrations.usdt-contracts key '%s' is not a network id: %w", key, err)
		}
		table[networkID] = address
	}

	return table, nil
}

func (c *Devnet) Validate() error {
	var errs []error

	if c.Image == "" {
		errs = append(errs, errors.New("devnet.image is required"))
	}
	if c.ContainerName == "" {
		errs = append(errs, errors.New("devnet.container-name is required"))
	}
	if c.ChainID <= 0 {
		errs = append(errs, errors.New("devnet.chain-id is required"))
	}
	if c.RPCPort <= 0 || c.RPCPort > 65535 {
		errs = append(errs, errors.New("devnet.rpc-port must be a valid port"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("devnet configuration validation failed: %w", errors.Join(errs...))
	}

	return nil
}
