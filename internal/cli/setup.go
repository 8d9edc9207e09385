package cli

import (
	"context"
	"fmt"

	"github.com/cogai-labs/goldenthread/internal/config"
	"github.com/cogai-labs/goldenthread/internal/logger"
	"github.com/cogai-labs/goldenthread/internal/state"
	"github.com/cogai-labs/goldenthread/internal/validation"
)

// loadConfig resolves configuration and initializes the global logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger.InitializeFromConfig(cfg)
	return cfg, nil
}

// newClient builds the validation service client from configuration.
func newClient(cfg *config.Config) (validation.Client, error) {
	return validation.NewClient(cfg.ServiceURL, cfg.Token,
		validation.WithSubmitTimeout(cfg.SubmitTimeout))
}

// newCoordinator builds a run coordinator hydrated from the service's
// latest-run lookup, with the local snapshot store attached.
func newCoordinator(ctx context.Context, cfg *config.Config) (*validation.Coordinator, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	return validation.Initialize(ctx, client,
		validation.WithSnapshotStore(state.NewStore(cfg.StateFile)))
}
