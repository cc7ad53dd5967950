package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/misemcp/internal/core"
	"github.com/sandevgo/misemcp/pkg/log"
)

var _ core.AppConfig = (*AppConfig)(nil)

type AppConfig struct {
	RuntimePath string `env:"MISE_MCP_RUNTIME_PATH"`
	MiseBinary  string `env:"MISE_BIN" envDefault:"mise"`

	// Empty disables the audit log. Relative paths live in RuntimePath.
	AuditDB string `env:"MISE_MCP_AUDIT_DB"`
}

func LoadAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("failed to parse app config: %w", err)
	}
	c.RuntimePath = GetRuntimePath()
	return c, nil
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := LoadAppConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetMiseBinary() string {
	return c.MiseBinary
}

func (c AppConfig) IsAuditEnabled() bool {
	return c.AuditDB != ""
}

func (c AppConfig) GetAuditDBPath() string {
	if c.AuditDB == "" || filepath.IsAbs(c.AuditDB) {
		return c.AuditDB
	}
	return filepath.Join(c.RuntimePath, c.AuditDB)
}

func (c AppConfig) GetEnvPath() string {
	return filepath.Join(c.RuntimePath, ".env")
}
