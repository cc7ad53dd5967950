package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/misemcp/internal/core"
	"github.com/sandevgo/misemcp/pkg/log"
)

var _ core.TimeoutConfig = (*TimeoutConfig)(nil)

type TimeoutConfig struct {
	Default    time.Duration `env:"MISE_MCP_TIMEOUT" envDefault:"30s"`
	TaskRun    time.Duration `env:"MISE_MCP_TASK_TIMEOUT" envDefault:"60s"`
	SelfUpdate time.Duration `env:"MISE_MCP_UPDATE_TIMEOUT" envDefault:"120s"`
}

func LoadTimeoutConfig() (*TimeoutConfig, error) {
	c := &TimeoutConfig{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("failed to parse timeout config: %w", err)
	}
	checks := []struct {
		name string
		d    time.Duration
	}{
		{"MISE_MCP_TIMEOUT", c.Default},
		{"MISE_MCP_TASK_TIMEOUT", c.TaskRun},
		{"MISE_MCP_UPDATE_TIMEOUT", c.SelfUpdate},
	}
	for _, check := range checks {
		if check.d <= 0 {
			return nil, fmt.Errorf("%s must be positive, got %s", check.name, check.d)
		}
	}
	return c, nil
}

func NewTimeoutConfig(ctx context.Context) *TimeoutConfig {
	c, err := LoadTimeoutConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Timeout config")
	}
	return c
}

func (c TimeoutConfig) GetDefaultTimeout() time.Duration {
	return c.Default
}

func (c TimeoutConfig) GetTaskTimeout() time.Duration {
	return c.TaskRun
}

func (c TimeoutConfig) GetUpdateTimeout() time.Duration {
	return c.SelfUpdate
}
