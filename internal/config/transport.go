package config

import (
	"context"
	"fmt"
	"net"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/misemcp/internal/core"
	"github.com/sandevgo/misemcp/pkg/log"
)

var _ core.TransportConfig = (*TransportConfig)(nil)

type TransportConfig struct {
	Transport string `env:"MISE_MCP_TRANSPORT" envDefault:"stdio"`
	Addr      string `env:"MISE_MCP_ADDR" envDefault:":8080"`
	// Public URL announced by the SSE transport. Derived from Addr when empty.
	BaseURL string `env:"MISE_MCP_BASE_URL"`
}

func LoadTransportConfig() (*TransportConfig, error) {
	c := &TransportConfig{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("failed to parse transport config: %w", err)
	}
	return c, nil
}

func NewTransportConfig(ctx context.Context) *TransportConfig {
	c, err := LoadTransportConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Transport config")
	}
	return c
}

func (c TransportConfig) GetTransport() string {
	return c.Transport
}

func (c TransportConfig) GetListenAddr() string {
	return c.Addr
}

func (c TransportConfig) GetBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}

	host, port, err := net.SplitHostPort(c.Addr)
	if err != nil {
		return "http://localhost" + c.Addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
