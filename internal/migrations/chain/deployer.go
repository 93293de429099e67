package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/compose-network/nerd-migrations/internal/logger"
	"github.com/compose-network/nerd-migrations/internal/migrations/domain"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type (
	// Backend is what the deployer needs from a chain client. *ethclient.Client satisfies it.
	Backend interface {
		bind.ContractBackend
		bind.DeployBackend
	}

	Options struct {
		GasLimit            uint64
		WaitForConfirmation bool
	}

	// Deployer deploys compiled contracts with a single signing key
	Deployer struct {
		backend    Backend
		privateKey *ecdsa.PrivateKey
		chainID    *big.Int
		artifacts  map[string]Artifact
		opts       Options
		logger     *slog.Logger
	}

	// Contract is a deployed contract bound to its ABI
	Contract struct {
		name     string
		address  common.Address
		abi      abi.ABI
		bound    *bind.BoundContract
		deployer *Deployer
	}
)

// NewDeployer creates a new contract deployer
func NewDeployer(backend Backend, privateKey *ecdsa.PrivateKey, chainID *big.Int, artifacts map[string]Artifact, opts Options) *Deployer {
	return &Deployer{
		backend:    backend,
		privateKey: privateKey,
		chainID:    chainID,
		artifacts:  artifacts,
		opts:       opts,
		logger:     logger.Named("chain_deployer"),
	}
}

// Deploy sends the creation transaction for contractName and, when
// confirmation is enabled, blocks until it is mined successfully.
func (d *Deployer) Deploy(ctx context.Context, contractName string, args ...any) (domain.ContractHandle, error) {
	artifact, err := d.artifact(contractName)
	if err != nil {
		return nil, err
	}

	params, err := coerceArgs(artifact.ABI.Constructor.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("invalid constructor arguments for %s: %w", contractName, err)
	}

	auth, err := d.transactor(ctx)
	if err != nil {
		return nil, err
	}

	address, tx, bound, err := bind.DeployContract(auth, artifact.ABI, artifact.Bytecode, d.backend, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy contract: %w", err)
	}

	d.logger.
		With("contract", contractName).
		With("address", address).
		With("tx_hash", tx.Hash().Hex()).
		Info("contract deployment transaction sent")

	if err := d.confirm(ctx, tx); err != nil {
		return nil, fmt.Errorf("deployment of %s not confirmed: %w", contractName, err)
	}

	return &Contract{
		name:     contractName,
		address:  address,
		abi:      artifact.ABI,
		bound:    bound,
		deployer: d,
	}, nil
}

// At binds to contractName already deployed at address.
func (d *Deployer) At(contractName string, address common.Address) (domain.ContractHandle, error) {
	artifact, err := d.artifact(contractName)
	if err != nil {
		return nil, err
	}

	return &Contract{
		name:     contractName,
		address:  address,
		abi:      artifact.ABI,
		bound:    bind.NewBoundContract(address, artifact.ABI, d.backend, d.backend, d.backend),
		deployer: d,
	}, nil
}

func (d *Deployer) artifact(contractName string) (Artifact, error) {
	artifact, ok := d.artifacts[contractName]
	if !ok {
		return Artifact{}, fmt.Errorf("no compiled artifact for contract %s", contractName)
	}
	return artifact, nil
}

func (d *Deployer) transactor(ctx context.Context) (*bind.TransactOpts, error) {
	auth, err := bind.NewKeyedTransactorWithChainID(d.privateKey, d.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}

	gasPrice, err := d.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}

	auth.Context = ctx
	auth.GasLimit = d.opts.GasLimit
	auth.GasPrice = gasPrice

	return auth, nil
}

func (d *Deployer) confirm(ctx context.Context, tx *types.Transaction) error {
	if !d.opts.WaitForConfirmation {
		return nil
	}

	receipt, err := bind.WaitMined(ctx, d.backend, tx)
	if err != nil {
		return fmt.Errorf("failed to wait for transaction: %w", err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("transaction %s failed with status %d", tx.Hash().Hex(), receipt.Status)
	}

	return nil
}

func (c *Contract) Address() common.Address {
	return c.address
}

// Call sends a state-changing transaction invoking method.
func (c *Contract) Call(ctx context.Context, method string, args ...any) error {
	m, ok := c.abi.Methods[method]
	if !ok {
		return fmt.Errorf("contract %s has no method %s", c.name, method)
	}

	params, err := coerceArgs(m.Inputs, args)
	if err != nil {
		return fmt.Errorf("invalid arguments for %s.%s: %w", c.name, method, err)
	}

	auth, err := c.deployer.transactor(ctx)
	if err != nil {
		return err
	}

	tx, err := c.bound.Transact(auth, method, params...)
	if err != nil {
		return fmt.Errorf("failed to send %s.%s: %w", c.name, method, err)
	}

	c.deployer.logger.
		With("contract", c.name).
		With("method", method).
		With("tx_hash", tx.Hash().Hex()).
		Info("wiring transaction sent")

	return c.deployer.confirm(ctx, tx)
}
