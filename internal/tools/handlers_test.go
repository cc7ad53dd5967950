package tools

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/sandevgo/misemcp/internal/core"
	"github.com/sandevgo/misemcp/internal/mise"
	"github.com/sandevgo/misemcp/internal/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	mu       sync.Mutex
	result   mise.Result
	requests []mise.Request
}

func (f *fakeRunner) Execute(ctx context.Context, req mise.Request) mise.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.result
}

func (f *fakeRunner) last(t *testing.T) mise.Request {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests, "runner was not called")
	return f.requests[len(f.requests)-1]
}

func (f *fakeRunner) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func succeed(out string) mise.Result {
	return mise.Result{Success: true, Output: out}
}

func fail(code int, msg string) mise.Result {
	return mise.Result{Error: msg, ReturnCode: code, Kind: mise.KindExit}
}

func newHandlers(res mise.Result) (*Handlers, *fakeRunner) {
	runner := &fakeRunner{result: res}
	return NewHandlers(runner, scrape.NewTextDecoder()), runner
}

func toJSON(t *testing.T, v any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestSetEnv(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h, runner := newHandlers(succeed("ok"))

		resp := h.SetEnv(context.Background(), SetEnvParams{Key: "TEST_VAR", Value: "test_value"})

		assert.True(t, resp.Success)
		assert.Equal(t, "TEST_VAR", resp.Key)
		assert.Equal(t, "test_value", *resp.Value)
		assert.Equal(t, "ok", resp.Output)
		assert.Nil(t, resp.Error)

		req := runner.last(t)
		assert.Empty(t, req.Subcommand)
		assert.Equal(t, []string{"env", "set", "TEST_VAR", "test_value"}, req.Args)
		assert.Equal(t, 30*time.Second, req.Timeout)
	})

	t.Run("with file", func(t *testing.T) {
		h, runner := newHandlers(succeed(""))

		h.SetEnv(context.Background(), SetEnvParams{Key: "A", Value: "1", File: ".env"})

		assert.Equal(t, []string{"env", "set", "--file", ".env", "A", "1"}, runner.last(t).Args)
	})

	t.Run("empty value is kept", func(t *testing.T) {
		h, _ := newHandlers(succeed(""))

		m := toJSON(t, h.SetEnv(context.Background(), SetEnvParams{Key: "EMPTY_VAR", Value: ""}))

		assert.Equal(t, true, m["success"])
		assert.Equal(t, "", m["value"])
		assert.NotContains(t, m, "error")
	})

	t.Run("value with special characters", func(t *testing.T) {
		h, runner := newHandlers(succeed(""))

		resp := h.SetEnv(context.Background(), SetEnvParams{Key: "VAR", Value: "value with spaces and $pecial"})

		assert.True(t, resp.Success)
		assert.Equal(t, "value with spaces and $pecial", runner.last(t).Args[3])
	})

	t.Run("mise failure", func(t *testing.T) {
		h, _ := newHandlers(fail(1, "no config file"))

		m := toJSON(t, h.SetEnv(context.Background(), SetEnvParams{Key: "A", Value: "1"}))

		assert.Equal(t, false, m["success"])
		assert.Equal(t, "no config file", m["error"])
		assert.Equal(t, "exit_status", m["error_kind"])
		assert.NotContains(t, m, "output")
	})

	t.Run("invalid name never reaches mise", func(t *testing.T) {
		for _, key := range []string{"123-bad", "VAR; rm -rf /", "VAR`cmd`", "VAR$(cmd)", ""} {
			h, runner := newHandlers(succeed(""))

			m := toJSON(t, h.SetEnv(context.Background(), SetEnvParams{Key: key, Value: "v"}))

			assert.Equal(t, false, m["success"])
			assert.Contains(t, m["error"], "Invalid environment variable name")
			assert.Equal(t, "validation", m["error_kind"])
			assert.NotContains(t, m, "key")
			assert.Zero(t, runner.calls())
		}
	})
}

func TestGetEnv(t *testing.T) {
	t.Run("all variables", func(t *testing.T) {
		h, runner := newHandlers(succeed("VAR1=value1\nVAR2=value2"))

		resp := h.GetEnv(context.Background(), GetEnvParams{})

		assert.True(t, resp.Success)
		assert.Equal(t, map[string]string{"VAR1": "value1", "VAR2": "value2"}, resp.Variables)
		assert.Equal(t, []string{"env"}, runner.last(t).Args)

		m := toJSON(t, resp)
		assert.Equal(t, map[string]any{
			"success":   true,
			"variables": map[string]any{"VAR1": "value1", "VAR2": "value2"},
		}, m)
	})

	t.Run("empty output gives empty map", func(t *testing.T) {
		h, _ := newHandlers(succeed(""))

		m := toJSON(t, h.GetEnv(context.Background(), GetEnvParams{}))

		assert.Equal(t, map[string]any{}, m["variables"])
	})

	t.Run("single variable", func(t *testing.T) {
		h, runner := newHandlers(succeed("/usr/bin"))

		resp := h.GetEnv(context.Background(), GetEnvParams{Key: "PATH"})

		assert.True(t, resp.Success)
		assert.Equal(t, "PATH", resp.Key)
		assert.Equal(t, "/usr/bin", *resp.Value)
		assert.Nil(t, resp.Variables)
		assert.Equal(t, []string{"env", "get", "PATH"}, runner.last(t).Args)
	})

	t.Run("not found", func(t *testing.T) {
		h, _ := newHandlers(fail(1, "Environment variable not found"))

		m := toJSON(t, h.GetEnv(context.Background(), GetEnvParams{Key: "NONEXISTENT"}))

		assert.Equal(t, map[string]any{
			"success":    false,
			"error":      "Environment variable not found",
			"error_kind": "exit_status",
		}, m)
	})

	t.Run("invalid key", func(t *testing.T) {
		h, runner := newHandlers(succeed(""))

		resp := h.GetEnv(context.Background(), GetEnvParams{Key: "BAD-KEY"})

		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid environment variable name: BAD-KEY", resp.ErrorText())
		assert.Zero(t, runner.calls())
	})
}

func TestUnsetEnv(t *testing.T) {
	h, runner := newHandlers(succeed("removed"))

	resp := h.UnsetEnv(context.Background(), UnsetEnvParams{Key: "OLD", File: ".mise.toml"})

	assert.True(t, resp.Success)
	assert.Equal(t, "OLD", resp.Key)
	assert.Equal(t, "removed", resp.Output)
	assert.Equal(t, []string{"env", "unset", "--file", ".mise.toml", "OLD"}, runner.last(t).Args)

	h, runner = newHandlers(succeed(""))
	resp = h.UnsetEnv(context.Background(), UnsetEnvParams{Key: "1BAD"})
	assert.False(t, resp.Success)
	assert.Zero(t, runner.calls())
}

func TestTaskRun(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h, runner := newHandlers(succeed("Build complete"))

		resp := h.TaskRun(context.Background(), TaskRunParams{Task: "build", Args: " --release  -v ", Cd: "/repo"})

		assert.True(t, resp.Success)
		assert.Equal(t, "build", resp.Task)
		assert.Equal(t, "Build complete", *resp.Output)
		assert.Equal(t, 0, *resp.ReturnCode)

		req := runner.last(t)
		assert.Equal(t, []string{"tasks", "run", "--cd", "/repo", "build", "--release", "-v"}, req.Args)
		assert.Equal(t, 60*time.Second, req.Timeout)
	})

	t.Run("quoted args are split on whitespace", func(t *testing.T) {
		h, runner := newHandlers(succeed("Done"))

		resp := h.TaskRun(context.Background(), TaskRunParams{Task: "test", Args: `--message "hello world"`})

		assert.True(t, resp.Success)
		assert.Equal(t, []string{"tasks", "run", "test", "--message", `"hello`, `world"`}, runner.last(t).Args)
	})

	t.Run("timeout", func(t *testing.T) {
		h, _ := newHandlers(mise.Result{
			Error:      "Command timed out after 60 seconds",
			ReturnCode: -1,
			Kind:       mise.KindTimeout,
		})

		m := toJSON(t, h.TaskRun(context.Background(), TaskRunParams{Task: "long-running-task"}))

		assert.Equal(t, false, m["success"])
		assert.Contains(t, m["error"], "timed out")
		assert.Equal(t, "timeout", m["error_kind"])
		assert.Equal(t, float64(-1), m["return_code"])
		assert.Equal(t, "", m["output"])
	})

	t.Run("injection attempts", func(t *testing.T) {
		for _, task := range []string{"task; rm -rf /", "task`cmd`", "task$(cmd)"} {
			h, runner := newHandlers(succeed(""))

			resp := h.TaskRun(context.Background(), TaskRunParams{Task: task})

			assert.False(t, resp.Success)
			assert.Equal(t, "Invalid task name: "+task, resp.ErrorText())
			assert.Nil(t, resp.ReturnCode)
			assert.Zero(t, runner.calls())
		}
	})
}

func TestTaskLs(t *testing.T) {
	t.Run("parses tasks", func(t *testing.T) {
		h, runner := newHandlers(succeed("build Build the project\ntest Run tests"))

		resp := h.TaskLs(context.Background(), TaskLsParams{Hidden: true})

		require.True(t, resp.Success)
		require.Len(t, resp.Tasks, 2)
		assert.Equal(t, core.Task{Name: "build", Description: "Build the project"}, resp.Tasks[0])
		assert.Equal(t, core.Task{Name: "test", Description: "Run tests"}, resp.Tasks[1])
		assert.Equal(t, 2, *resp.Count)
		assert.Equal(t, []string{"tasks", "ls", "--hidden"}, runner.last(t).Args)
	})

	t.Run("no tasks", func(t *testing.T) {
		h, _ := newHandlers(succeed(""))

		m := toJSON(t, h.TaskLs(context.Background(), TaskLsParams{}))

		assert.Equal(t, true, m["success"])
		assert.Equal(t, []any{}, m["tasks"])
		assert.Equal(t, float64(0), m["count"])
	})

	t.Run("failure", func(t *testing.T) {
		h, _ := newHandlers(mise.Result{Error: "mise CLI not found in PATH", ReturnCode: 1, Kind: mise.KindNotFound})

		m := toJSON(t, h.TaskLs(context.Background(), TaskLsParams{}))

		assert.Equal(t, map[string]any{
			"success":    false,
			"error":      "mise CLI not found in PATH",
			"error_kind": "executable_not_found",
		}, m)
	})
}

func TestTaskInfo(t *testing.T) {
	h, runner := newHandlers(succeed("Task: build\nDescription: Build the project"))

	resp := h.TaskInfo(context.Background(), TaskParams{Task: "build"})

	require.True(t, resp.Success)
	assert.Equal(t, "build", resp.TaskInfo["name"])
	assert.Equal(t, "Build the project", resp.TaskInfo["description"])
	assert.Equal(t, "Task: build\nDescription: Build the project", resp.TaskInfo["raw_output"])
	assert.Equal(t, []string{"tasks", "info", "build"}, runner.last(t).Args)

	h, _ = newHandlers(succeed("Some malformed output without colons"))
	resp = h.TaskInfo(context.Background(), TaskParams{Task: "test"})
	require.True(t, resp.Success)
	assert.Equal(t, "test", resp.TaskInfo["name"])
	assert.Contains(t, resp.TaskInfo, "raw_output")

	h, runner = newHandlers(succeed(""))
	resp = h.TaskInfo(context.Background(), TaskParams{Task: "bad task"})
	assert.False(t, resp.Success)
	assert.Zero(t, runner.calls())
}

func TestTaskEdit(t *testing.T) {
	h, runner := newHandlers(succeed(""))

	resp := h.TaskEdit(context.Background(), TaskEditParams{Task: "build", Editor: "vim"})

	assert.True(t, resp.Success)
	assert.Equal(t, "Task opened for editing", resp.Message)
	req := runner.last(t)
	assert.Equal(t, []string{"tasks", "edit", "build"}, req.Args)
	assert.Equal(t, map[string]string{"EDITOR": "vim"}, req.Env)

	h, runner = newHandlers(fail(1, "task not found"))
	resp = h.TaskEdit(context.Background(), TaskEditParams{Task: "missing"})
	assert.False(t, resp.Success)
	assert.Empty(t, resp.Message)
	assert.Equal(t, "task not found", resp.ErrorText())
	assert.Nil(t, runner.last(t).Env)
}

func TestTaskDeps(t *testing.T) {
	h, runner := newHandlers(succeed("lint\n  test:unit \n\n"))

	resp := h.TaskDeps(context.Background(), TaskParams{Task: "ci"})

	require.True(t, resp.Success)
	assert.Equal(t, "ci", resp.Task)
	assert.Equal(t, []string{"lint", "test:unit"}, resp.Dependencies)
	assert.Equal(t, 2, *resp.Count)
	assert.Equal(t, []string{"tasks", "deps", "ci"}, runner.last(t).Args)
}

func TestGetConfig(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		h, runner := newHandlers(succeed(`{"experimental": true}`))

		m := toJSON(t, h.GetConfig(context.Background(), GetConfigParams{}))

		assert.Equal(t, map[string]any{
			"success": true,
			"config":  map[string]any{"experimental": true},
		}, m)
		assert.Equal(t, []string{"config", "get"}, runner.last(t).Args)
	})

	t.Run("json null is still config", func(t *testing.T) {
		h, _ := newHandlers(succeed("null"))

		m := toJSON(t, h.GetConfig(context.Background(), GetConfigParams{}))

		assert.Equal(t, map[string]any{"success": true, "config": nil}, m)
		assert.Contains(t, m, "config")
	})

	t.Run("raw fallback", func(t *testing.T) {
		h, _ := newHandlers(succeed("broken {"))

		m := toJSON(t, h.GetConfig(context.Background(), GetConfigParams{}))

		assert.Equal(t, map[string]any{"success": true, "raw_config": "broken {"}, m)
	})

	t.Run("nested key", func(t *testing.T) {
		h, runner := newHandlers(succeed("value123"))

		resp := h.GetConfig(context.Background(), GetConfigParams{Key: "tools.node.version"})

		assert.True(t, resp.Success)
		assert.Equal(t, "tools.node.version", resp.Key)
		assert.Equal(t, "value123", *resp.Value)
		assert.Equal(t, []string{"config", "get", "tools.node.version"}, runner.last(t).Args)
	})

	t.Run("injection attempts", func(t *testing.T) {
		for _, key := range []string{"key; cat /etc/passwd", "key`cmd`", "a..b"} {
			h, runner := newHandlers(succeed(""))

			resp := h.GetConfig(context.Background(), GetConfigParams{Key: key})

			assert.False(t, resp.Success)
			assert.Equal(t, "Invalid configuration key: "+key, resp.ErrorText())
			assert.Zero(t, runner.calls())
		}
	})
}

func TestCurrentConfig(t *testing.T) {
	h, runner := newHandlers(succeed("~/.config/mise/config.toml\n/repo/.mise.toml\n"))

	resp := h.CurrentConfig(context.Background())

	require.True(t, resp.Success)
	assert.Equal(t, []string{"~/.config/mise/config.toml", "/repo/.mise.toml"}, resp.ConfigFiles)
	assert.Equal(t, 2, *resp.Count)
	assert.Equal(t, []string{"config", "ls"}, runner.last(t).Args)
}

func TestSelfUpdate(t *testing.T) {
	h, runner := newHandlers(succeed("mise updated to 2026.1.0"))

	resp := h.SelfUpdate(context.Background(), SelfUpdateParams{Version: "2026.1.0", Force: true})

	assert.True(t, resp.Success)
	assert.Equal(t, "mise updated to 2026.1.0", *resp.Output)
	req := runner.last(t)
	assert.Equal(t, []string{"self-update", "2026.1.0", "--force"}, req.Args)
	assert.Equal(t, 120*time.Second, req.Timeout)
}

func TestFmtConfig(t *testing.T) {
	t.Run("no files", func(t *testing.T) {
		h, runner := newHandlers(succeed(""))

		m := toJSON(t, h.FmtConfig(context.Background(), FmtConfigParams{}))

		assert.Equal(t, map[string]any{"success": true, "formatted_files": []any{}}, m)
		assert.Equal(t, []string{"fmt"}, runner.last(t).Args)
	})

	t.Run("with path", func(t *testing.T) {
		h, runner := newHandlers(succeed("formatted: /path/to/.mise.toml"))

		resp := h.FmtConfig(context.Background(), FmtConfigParams{Path: "/path/to"})

		assert.True(t, resp.Success)
		assert.Len(t, resp.FormattedFiles, 1)
		assert.Equal(t, []string{"fmt", "/path/to"}, runner.last(t).Args)
	})

	t.Run("failure keeps empty list", func(t *testing.T) {
		h, _ := newHandlers(fail(2, "parse error"))

		m := toJSON(t, h.FmtConfig(context.Background(), FmtConfigParams{}))

		assert.Equal(t, []any{}, m["formatted_files"])
		assert.Equal(t, "parse error", m["error"])
	})
}

func TestWithTimeouts(t *testing.T) {
	runner := &fakeRunner{result: succeed("")}
	h := NewHandlers(runner, scrape.NewTextDecoder(), WithTimeouts(Timeouts{
		Default:    time.Second,
		TaskRun:    2 * time.Second,
		SelfUpdate: 3 * time.Second,
	}))

	h.TaskLs(context.Background(), TaskLsParams{})
	assert.Equal(t, time.Second, runner.last(t).Timeout)

	h.TaskRun(context.Background(), TaskRunParams{Task: "build"})
	assert.Equal(t, 2*time.Second, runner.last(t).Timeout)

	h.SelfUpdate(context.Background(), SelfUpdateParams{})
	assert.Equal(t, 3*time.Second, runner.last(t).Timeout)
}

func TestFailureWithEmptyStderr(t *testing.T) {
	h, _ := newHandlers(fail(3, ""))

	m := toJSON(t, h.TaskLs(context.Background(), TaskLsParams{}))

	assert.Equal(t, map[string]any{
		"success":    false,
		"error":      "",
		"error_kind": "exit_status",
	}, m)

	m = toJSON(t, h.SetEnv(context.Background(), SetEnvParams{Key: "A", Value: "1"}))
	assert.Equal(t, "", m["error"])
	assert.Contains(t, m, "error")
}
