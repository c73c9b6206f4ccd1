package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/edukeeper/internal/client/api"
)

// ErrPingUnsupported удалённое хранилище не умеет health check
var ErrPingUnsupported = errors.New("remote store does not support health checks")

func (c *Cli) runPing(ctx context.Context) error {
	hc, ok := c.remote.(api.HealthChecker)
	if !ok {
		return ErrPingUnsupported
	}

	health, err := hc.Health(ctx)
	if err != nil {
		return fmt.Errorf("server is unreachable: %w", err)
	}

	c.io.Printf("Server: %s\n", health.Status)
	if health.Version != "" {
		c.io.Printf("Version: %s\n", health.Version)
	}
	if health.Storage != "" {
		c.io.Printf("Storage: %s\n", health.Storage)
	}
	return nil
}
