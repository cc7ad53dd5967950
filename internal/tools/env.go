package tools

import (
	"context"

	"github.com/samber/lo"
	"github.com/sandevgo/misemcp/internal/validate"
)

const fieldEnvName = "environment variable name"

type SetEnvParams struct {
	Key   string `mapstructure:"key"`
	Value string `mapstructure:"value"`
	File  string `mapstructure:"file"`
}

// SetEnv runs `mise env set [--file F] KEY VALUE`.
func (h *Handlers) SetEnv(ctx context.Context, p SetEnvParams) SetEnvResponse {
	if !validate.EnvName(p.Key) {
		return SetEnvResponse{Status: invalid(fieldEnvName, p.Key)}
	}

	args := []string{"env", "set"}
	if p.File != "" {
		args = append(args, "--file", p.File)
	}
	args = append(args, p.Key, p.Value)

	res := h.run(ctx, h.timeouts.Default, nil, args...)

	resp := SetEnvResponse{
		Status: statusOf(res),
		Key:    p.Key,
		Value:  lo.ToPtr(p.Value),
	}
	if res.Success {
		resp.Output = res.Output
	}
	return resp
}

type GetEnvParams struct {
	Key string `mapstructure:"key"`
}

// GetEnv runs `mise env get KEY`, or `mise env` when no key is given and
// returns every variable.
func (h *Handlers) GetEnv(ctx context.Context, p GetEnvParams) GetEnvResponse {
	if p.Key != "" && !validate.EnvName(p.Key) {
		return GetEnvResponse{Status: invalid(fieldEnvName, p.Key)}
	}

	args := []string{"env"}
	if p.Key != "" {
		args = append(args, "get", p.Key)
	}

	res := h.run(ctx, h.timeouts.Default, nil, args...)
	if !res.Success {
		return GetEnvResponse{Status: statusOf(res)}
	}

	if p.Key != "" {
		return GetEnvResponse{
			Status: ok(),
			Key:    p.Key,
			Value:  lo.ToPtr(res.Output),
		}
	}
	return GetEnvResponse{
		Status:    ok(),
		Variables: h.decoder.Variables(res.Output),
	}
}

type UnsetEnvParams struct {
	Key  string `mapstructure:"key"`
	File string `mapstructure:"file"`
}

// UnsetEnv runs `mise env unset [--file F] KEY`.
func (h *Handlers) UnsetEnv(ctx context.Context, p UnsetEnvParams) UnsetEnvResponse {
	if !validate.EnvName(p.Key) {
		return UnsetEnvResponse{Status: invalid(fieldEnvName, p.Key)}
	}

	args := []string{"env", "unset"}
	if p.File != "" {
		args = append(args, "--file", p.File)
	}
	args = append(args, p.Key)

	res := h.run(ctx, h.timeouts.Default, nil, args...)

	resp := UnsetEnvResponse{
		Status: statusOf(res),
		Key:    p.Key,
	}
	if res.Success {
		resp.Output = res.Output
	}
	return resp
}
