// Package mise runs the mise CLI as a child process.
package mise

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/sandevgo/misemcp/pkg/log"
)

const (
	DefaultBinary  = "mise"
	DefaultTimeout = 30 * time.Second

	// waitDelay bounds how long Wait blocks on pipes held open by
	// grandchildren after the direct child is gone.
	waitDelay = 2 * time.Second
)

// Request describes one invocation. An empty Subcommand adds no token,
// so callers may put the whole command line in Args.
type Request struct {
	Subcommand string
	Args       []string
	Timeout    time.Duration
	Env        map[string]string
}

type Executor struct {
	binary  string
	timeout time.Duration
}

type Option func(*Executor)

// WithBinary sets the executable name or path looked up on PATH.
func WithBinary(binary string) Option {
	return func(e *Executor) {
		if binary != "" {
			e.binary = binary
		}
	}
}

// WithDefaultTimeout is used for requests that carry no timeout.
func WithDefaultTimeout(d time.Duration) Option {
	return func(e *Executor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

func NewExecutor(opts ...Option) *Executor {
	e := &Executor{
		binary:  DefaultBinary,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Executor) Binary() string {
	return e.binary
}

// Execute runs mise and never returns an error: every failure mode is
// folded into the Result.
func (e *Executor) Execute(ctx context.Context, req Request) Result {
	logger := log.FromCtx(ctx)

	path, err := exec.LookPath(e.binary)
	if err != nil {
		logger.Debug().Err(err).Str("binary", e.binary).Msg("mise binary not found")
		return failure(KindNotFound, 1, fmt.Sprintf("%s CLI not found in PATH", e.binary))
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = e.timeout
	}

	argv := make([]string, 0, len(req.Args)+1)
	if req.Subcommand != "" {
		argv = append(argv, req.Subcommand)
	}
	argv = append(argv, req.Args...)

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, path, argv...)
	cmd.Env = mergeEnv(os.Environ(), req.Env)
	cmd.WaitDelay = waitDelay
	setProcessGroup(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	elapsed := time.Since(start)

	event := logger.Debug().
		Str("binary", path).
		Strs("args", argv).
		Dur("elapsed", elapsed)

	if err != nil && runCtx.Err() != nil {
		if ctx.Err() != nil {
			event.Msg("mise command cancelled")
			return failure(KindCancelled, -1, "Command cancelled before completion")
		}
		event.Msg("mise command timed out")
		return failure(KindTimeout, -1, fmt.Sprintf("Command timed out after %s seconds", formatSeconds(timeout)))
	}

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) && !errors.Is(err, exec.ErrWaitDelay) {
		event.Err(err).Msg("mise command failed to run")
		return failure(KindSpawn, 1, fmt.Sprintf("Failed to execute command: %v", err))
	}

	code := cmd.ProcessState.ExitCode()
	event.Int("return_code", code).Msg("mise command finished")

	res := Result{
		Success:    code == 0,
		Output:     decode(stdout.Bytes()),
		Error:      decode(stderr.Bytes()),
		ReturnCode: code,
	}
	if !res.Success {
		res.Kind = KindExit
	}
	return res
}

// mergeEnv overlays extra on base; keys in extra replace existing ones.
func mergeEnv(base []string, extra map[string]string) []string {
	if len(extra) == 0 {
		return base
	}

	env := make([]string, 0, len(base)+len(extra))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if _, ok := extra[key]; ok {
			continue
		}
		env = append(env, kv)
	}
	for k, v := range extra {
		env = append(env, k+"="+v)
	}
	return env
}

func decode(b []byte) string {
	return strings.TrimSpace(strings.ToValidUTF8(string(b), "\uFFFD"))
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}
