package tools

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"github.com/sandevgo/misemcp/internal/validate"
)

const fieldTaskName = "task name"

type TaskRunParams struct {
	Task string `mapstructure:"task"`
	Args string `mapstructure:"args"`
	Cd   string `mapstructure:"cd"`
}

// TaskRun runs `mise tasks run [--cd DIR] TASK args...`. Args is split on
// whitespace; quoting is not interpreted.
func (h *Handlers) TaskRun(ctx context.Context, p TaskRunParams) TaskRunResponse {
	if !validate.TaskName(p.Task) {
		return TaskRunResponse{Status: invalid(fieldTaskName, p.Task)}
	}

	args := []string{"tasks", "run"}
	if p.Cd != "" {
		args = append(args, "--cd", p.Cd)
	}
	args = append(args, p.Task)
	args = append(args, strings.Fields(p.Args)...)

	res := h.run(ctx, h.timeouts.TaskRun, nil, args...)

	return TaskRunResponse{
		Status:     statusOf(res),
		Task:       p.Task,
		Output:     lo.ToPtr(res.Output),
		ReturnCode: lo.ToPtr(res.ReturnCode),
	}
}

type TaskLsParams struct {
	Hidden bool `mapstructure:"hidden"`
}

// TaskLs runs `mise tasks ls [--hidden]`.
func (h *Handlers) TaskLs(ctx context.Context, p TaskLsParams) TaskLsResponse {
	args := []string{"tasks", "ls"}
	if p.Hidden {
		args = append(args, "--hidden")
	}

	res := h.run(ctx, h.timeouts.Default, nil, args...)
	if !res.Success {
		return TaskLsResponse{Status: statusOf(res)}
	}

	tasks := h.decoder.Tasks(res.Output)
	return TaskLsResponse{
		Status: ok(),
		Tasks:  tasks,
		Count:  lo.ToPtr(len(tasks)),
	}
}

type TaskParams struct {
	Task string `mapstructure:"task"`
}

// TaskInfo runs `mise tasks info TASK`.
func (h *Handlers) TaskInfo(ctx context.Context, p TaskParams) TaskInfoResponse {
	if !validate.TaskName(p.Task) {
		return TaskInfoResponse{Status: invalid(fieldTaskName, p.Task)}
	}

	res := h.run(ctx, h.timeouts.Default, nil, "tasks", "info", p.Task)
	if !res.Success {
		return TaskInfoResponse{Status: statusOf(res)}
	}

	return TaskInfoResponse{
		Status:   ok(),
		TaskInfo: h.decoder.TaskInfo(p.Task, res.Output),
	}
}

type TaskEditParams struct {
	Task   string `mapstructure:"task"`
	Editor string `mapstructure:"editor"`
}

// TaskEdit runs `mise tasks edit TASK`, with EDITOR overridden when an
// editor is given. mise may block on an interactive editor until the
// timeout kills it.
func (h *Handlers) TaskEdit(ctx context.Context, p TaskEditParams) TaskEditResponse {
	if !validate.TaskName(p.Task) {
		return TaskEditResponse{Status: invalid(fieldTaskName, p.Task)}
	}

	var env map[string]string
	if p.Editor != "" {
		env = map[string]string{"EDITOR": p.Editor}
	}

	res := h.run(ctx, h.timeouts.Default, env, "tasks", "edit", p.Task)

	resp := TaskEditResponse{
		Status: statusOf(res),
		Task:   p.Task,
	}
	if res.Success {
		resp.Message = "Task opened for editing"
	}
	return resp
}

// TaskDeps runs `mise tasks deps TASK`.
func (h *Handlers) TaskDeps(ctx context.Context, p TaskParams) TaskDepsResponse {
	if !validate.TaskName(p.Task) {
		return TaskDepsResponse{Status: invalid(fieldTaskName, p.Task)}
	}

	res := h.run(ctx, h.timeouts.Default, nil, "tasks", "deps", p.Task)
	if !res.Success {
		return TaskDepsResponse{Status: statusOf(res)}
	}

	deps := h.decoder.Lines(res.Output)
	return TaskDepsResponse{
		Status:       ok(),
		Task:         p.Task,
		Dependencies: deps,
		Count:        lo.ToPtr(len(deps)),
	}
}
