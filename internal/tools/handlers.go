// Package tools implements one handler per exposed mise capability:
// validate the arguments, build the mise command line, run it and shape
// the result.
package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/misemcp/internal/core"
	"github.com/sandevgo/misemcp/internal/mise"
)

// Runner executes a mise command line. *mise.Executor satisfies it.
type Runner interface {
	Execute(ctx context.Context, req mise.Request) mise.Result
}

type Timeouts struct {
	Default    time.Duration
	TaskRun    time.Duration
	SelfUpdate time.Duration
}

func DefaultTimeouts() Timeouts {
	return Timeouts{
		Default:    30 * time.Second,
		TaskRun:    60 * time.Second,
		SelfUpdate: 120 * time.Second,
	}
}

// TimeoutsFrom reads timeouts from configuration, keeping defaults for
// unset values.
func TimeoutsFrom(cfg core.TimeoutConfig) Timeouts {
	t := DefaultTimeouts()
	if d := cfg.GetDefaultTimeout(); d > 0 {
		t.Default = d
	}
	if d := cfg.GetTaskTimeout(); d > 0 {
		t.TaskRun = d
	}
	if d := cfg.GetUpdateTimeout(); d > 0 {
		t.SelfUpdate = d
	}
	return t
}

type Handlers struct {
	runner   Runner
	decoder  core.Decoder
	timeouts Timeouts
}

type Option func(*Handlers)

func WithTimeouts(t Timeouts) Option {
	return func(h *Handlers) {
		h.timeouts = t
	}
}

func NewHandlers(runner Runner, decoder core.Decoder, opts ...Option) *Handlers {
	h := &Handlers{
		runner:   runner,
		decoder:  decoder,
		timeouts: DefaultTimeouts(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// run executes `mise <args...>`. Handlers always pass the full command
// line as args and leave the subcommand empty.
func (h *Handlers) run(ctx context.Context, timeout time.Duration, env map[string]string, args ...string) mise.Result {
	return h.runner.Execute(ctx, mise.Request{
		Args:    args,
		Timeout: timeout,
		Env:     env,
	})
}

func invalid(field, value string) Status {
	return failed(mise.KindValidation, fmt.Sprintf("Invalid %s: %s", field, value))
}
