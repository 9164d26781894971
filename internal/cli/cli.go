// Package cli holds the bootstrap shared by the colm commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hupe1980/colm/config"
	"github.com/hupe1980/colm/gateway"
	"github.com/hupe1980/colm/logging"
)

// Setup loads an optional .env file and returns a signal-aware context and
// the process logger.
func Setup(component string) (context.Context, context.CancelFunc, *logging.StructuredLogger) {
	_ = godotenv.Load()

	cfg := logging.ConfigFromEnv()
	cfg.Component = component
	logger := logging.New(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx, cancel, logger
}

// LoadDirectory reads and validates the endpoint directory and checks that
// every backend in need is present.
func LoadDirectory(path string, need ...string) (config.EndpointDirectory, error) {
	dir, err := config.LoadEndpointDirectory(path)
	if err != nil {
		return nil, err
	}
	if err := dir.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for _, id := range need {
		if _, ok := dir[id]; !ok {
			return nil, fmt.Errorf("%s: backend %q: %w", path, id, gateway.ErrUnknownBackend)
		}
	}
	return dir, nil
}

// Gateway builds the backend gateway for dir.
func Gateway(ctx context.Context, dir config.EndpointDirectory, logger logging.Logger, jitter gateway.Jitter) (*gateway.Gateway, error) {
	return gateway.FromDirectory(ctx, dir, gateway.DefaultFactory, func(o *gateway.Options) {
		o.Logger = logger
		o.Jitter = jitter
	})
}
