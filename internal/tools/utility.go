package tools

import (
	"context"

	"github.com/samber/lo"
)

type SelfUpdateParams struct {
	Version string `mapstructure:"version"`
	Force   bool   `mapstructure:"force"`
}

// SelfUpdate runs `mise self-update [VERSION] [--force]`.
func (h *Handlers) SelfUpdate(ctx context.Context, p SelfUpdateParams) SelfUpdateResponse {
	args := []string{"self-update"}
	if p.Version != "" {
		args = append(args, p.Version)
	}
	if p.Force {
		args = append(args, "--force")
	}

	res := h.run(ctx, h.timeouts.SelfUpdate, nil, args...)

	return SelfUpdateResponse{
		Status: statusOf(res),
		Output: lo.ToPtr(res.Output),
	}
}

type FmtConfigParams struct {
	Path string `mapstructure:"path"`
}

// FmtConfig runs `mise fmt [PATH]`.
func (h *Handlers) FmtConfig(ctx context.Context, p FmtConfigParams) FmtConfigResponse {
	args := []string{"fmt"}
	if p.Path != "" {
		args = append(args, p.Path)
	}

	res := h.run(ctx, h.timeouts.Default, nil, args...)
	if !res.Success {
		return FmtConfigResponse{
			Status:         statusOf(res),
			FormattedFiles: []string{},
		}
	}

	return FmtConfigResponse{
		Status:         ok(),
		FormattedFiles: h.decoder.FormattedFiles(res.Output),
	}
}
