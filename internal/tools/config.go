package tools

import (
	"context"

	"github.com/samber/lo"
	"github.com/sandevgo/misemcp/internal/validate"
)

type GetConfigParams struct {
	Key string `mapstructure:"key"`
}

// GetConfig runs `mise config get [KEY]`. Without a key the output is
// parsed as JSON and returned raw when it is not.
func (h *Handlers) GetConfig(ctx context.Context, p GetConfigParams) GetConfigResponse {
	if p.Key != "" && !validate.ConfigKey(p.Key) {
		return GetConfigResponse{Status: invalid("configuration key", p.Key)}
	}

	args := []string{"config", "get"}
	if p.Key != "" {
		args = append(args, p.Key)
	}

	res := h.run(ctx, h.timeouts.Default, nil, args...)
	if !res.Success {
		return GetConfigResponse{Status: statusOf(res)}
	}

	if p.Key != "" {
		return GetConfigResponse{
			Status: ok(),
			Key:    p.Key,
			Value:  lo.ToPtr(res.Output),
		}
	}

	cfg, raw, parsed := h.decoder.Config(res.Output)
	if !parsed {
		return GetConfigResponse{
			Status:    ok(),
			RawConfig: lo.ToPtr(raw),
		}
	}
	return GetConfigResponse{
		Status: ok(),
		Config: cfg,
	}
}

// CurrentConfig runs `mise config ls` and lists the active config files.
func (h *Handlers) CurrentConfig(ctx context.Context) CurrentConfigResponse {
	res := h.run(ctx, h.timeouts.Default, nil, "config", "ls")
	if !res.Success {
		return CurrentConfigResponse{Status: statusOf(res)}
	}

	files := h.decoder.Lines(res.Output)
	return CurrentConfigResponse{
		Status:      ok(),
		ConfigFiles: files,
		Count:       lo.ToPtr(len(files)),
	}
}
