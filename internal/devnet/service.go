package devnet

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/compose-network/nerd-migrations/configs"
	"github.com/compose-network/nerd-migrations/internal/infra/docker"
	"github.com/compose-network/nerd-migrations/internal/logger"
)

const (
	anvilPort = 8545

	readinessAttempts = 30
	readinessInterval = time.Second
)

type (
	dockerClient interface {
		ImageExists(ctx context.Context, imageName string) (bool, error)
		PullImage(ctx context.Context, imageName string) error
		StartContainer(ctx context.Context, opts docker.ContainerOptions) (string, error)
		RemoveContainer(ctx context.Context, name string) error
	}

	rpcWaiter func(ctx context.Context, url string, attempts int, interval time.Duration) error

	// Service runs a throwaway anvil chain in docker for dry runs of the migrations
	Service struct {
		docker  dockerClient
		waitRPC rpcWaiter
		logger  *slog.Logger
	}
)

func NewService(docker dockerClient, waitRPC rpcWaiter) *Service {
	return &Service{
		docker:  docker,
		waitRPC: waitRPC,
		logger:  logger.Named("devnet_service"),
	}
}

// Start replaces any previous devnet container and returns its RPC URL once it answers.
func (s *Service) Start(ctx context.Context, cfg configs.Devnet) (string, error) {
	exists, err := s.docker.ImageExists(ctx, cfg.Image)
	if err != nil {
		return "", fmt.Errorf("failed to inspect image %s: %w", cfg.Image, err)
	}
	if !exists {
		if err := s.docker.PullImage(ctx, cfg.Image); err != nil {
			return "", err
		}
	}

	if err := s.docker.RemoveContainer(ctx, cfg.ContainerName); err != nil {
		return "", err
	}

	_, err = s.docker.StartContainer(ctx, docker.ContainerOptions{
		Name:          cfg.ContainerName,
		Image:         cfg.Image,
		Entrypoint:    []string{"anvil"},
		Cmd:           anvilArgs(cfg),
		ContainerPort: anvilPort,
		HostPort:      cfg.RPCPort,
	})
	if err != nil {
		return "", err
	}

	rpcURL := buildURL("http", "localhost", cfg.RPCPort)
	s.logger.With("rpc_url", rpcURL).Info("waiting for devnet RPC")

	if err := s.waitRPC(ctx, rpcURL, readinessAttempts, readinessInterval); err != nil {
		return "", fmt.Errorf("devnet did not become ready: %w", err)
	}

	return rpcURL, nil
}

func (s *Service) Stop(ctx context.Context, cfg configs.Devnet) error {
	return s.docker.RemoveContainer(ctx, cfg.ContainerName)
}

func anvilArgs(cfg configs.Devnet) []string {
	return []string{
		"--host", "0.0.0.0",
		"--port", strconv.Itoa(anvilPort),
		"--chain-id", strconv.Itoa(cfg.ChainID),
	}
}

func buildURL(scheme, host string, port int) string {
	addr := url.URL{
		Scheme: scheme,
		Host:   fmt.Sprintf("%s:%d", host, port),
	}
	return addr.String()
}
