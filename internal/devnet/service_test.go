package devnet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/compose-network/nerd-migrations/configs"
	"github.com/compose-network/nerd-migrations/internal/infra/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDocker struct {
	imageExists bool
	pulled      []string
	started     []docker.ContainerOptions
	removed     []string
	startErr    error
}

func (d *fakeDocker) ImageExists(context.Context, string) (bool, error) {
	return d.imageExists, nil
}

func (d *fakeDocker) PullImage(_ context.Context, imageName string) error {
	d.pulled = append(d.pulled, imageName)
	return nil
}

func (d *fakeDocker) StartContainer(_ context.Context, opts docker.ContainerOptions) (string, error) {
	if d.startErr != nil {
		return "", d.startErr
	}
	d.started = append(d.started, opts)
	return "id", nil
}

func (d *fakeDocker) RemoveContainer(_ context.Context, name string) error {
	d.removed = append(d.removed, name)
	return nil
}

var devnetConfig = configs.Devnet{
	Image:         "ghcr.io/foundry-rs/foundry:latest",
	ContainerName: "nerd-migrations-anvil",
	ChainID:       97,
	RPCPort:       18545,
}

func TestStart(t *testing.T) {
	tests := []struct {
		name        string
		imageExists bool
		wantPulled  []string
	}{
		{name: "image present", imageExists: true},
		{name: "image missing", imageExists: false, wantPulled: []string{devnetConfig.Image}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeDocker{imageExists: tt.imageExists}
			var waitedOn string
			service := NewService(client, func(_ context.Context, url string, _ int, _ time.Duration) error {
				waitedOn = url
				return nil
			})

			rpcURL, err := service.Start(context.Background(), devnetConfig)
			require.NoError(t, err)

			assert.Equal(t, "http://localhost:18545", rpcURL)
			assert.Equal(t, rpcURL, waitedOn)
			assert.Equal(t, tt.wantPulled, client.pulled)
			assert.Equal(t, []string{"nerd-migrations-anvil"}, client.removed)

			require.Len(t, client.started, 1)
			started := client.started[0]
			assert.Equal(t, []string{"anvil"}, started.Entrypoint)
			assert.Equal(t, []string{"--host", "0.0.0.0", "--port", "8545", "--chain-id", "97"}, started.Cmd)
			assert.Equal(t, 8545, started.ContainerPort)
			assert.Equal(t, 18545, started.HostPort)
		})
	}
}

func TestStartFailsWhenRPCNeverAnswers(t *testing.T) {
	service := NewService(&fakeDocker{imageExists: true}, func(context.Context, string, int, time.Duration) error {
		return errors.New("timed out")
	})

	_, err := service.Start(context.Background(), devnetConfig)
	require.ErrorContains(t, err, "devnet did not become ready")
}

func TestStartPropagatesContainerErrors(t *testing.T) {
	service := NewService(&fakeDocker{imageExists: true, startErr: errors.New("port in use")}, nil)

	_, err := service.Start(context.Background(), devnetConfig)
	require.ErrorContains(t, err, "port in use")
}

func TestStop(t *testing.T) {
	client := &fakeDocker{}
	require.NoError(t, NewService(client, nil).Stop(context.Background(), devnetConfig))
	assert.Equal(t, []string{"nerd-migrations-anvil"}, client.removed)
}
