package tools

import (
	"encoding/json"

	"github.com/samber/lo"
	"github.com/sandevgo/misemcp/internal/core"
	"github.com/sandevgo/misemcp/internal/mise"
)

// Status is embedded in every response. Error and ErrorKind are only set
// when Success is false; Error is then always present, even when mise
// wrote nothing to stderr.
//
// Collections use omitzero: a nil slice or map means "not part of this
// response", an empty one is a real empty result.
type Status struct {
	Success   bool           `json:"success"`
	Error     *string        `json:"error,omitempty"`
	ErrorKind mise.ErrorKind `json:"error_kind,omitempty"`
}

// Outcome exposes the embedded status of any response.
func (s Status) Outcome() Status {
	return s
}

// ErrorText returns the error text, empty on success.
func (s Status) ErrorText() string {
	return lo.FromPtr(s.Error)
}

// Reporter is implemented by every response type.
type Reporter interface {
	Outcome() Status
}

func ok() Status {
	return Status{Success: true}
}

func failed(kind mise.ErrorKind, msg string) Status {
	return Status{Error: lo.ToPtr(msg), ErrorKind: kind}
}

func statusOf(res mise.Result) Status {
	if res.Success {
		return ok()
	}
	return failed(res.Kind, res.Error)
}

type SetEnvResponse struct {
	Status
	Key    string  `json:"key,omitempty"`
	Value  *string `json:"value,omitempty"`
	Output string  `json:"output,omitempty"`
}

type GetEnvResponse struct {
	Status
	Key       string            `json:"key,omitempty"`
	Value     *string           `json:"value,omitempty"`
	Variables map[string]string `json:"variables,omitzero"`
}

type UnsetEnvResponse struct {
	Status
	Key    string `json:"key,omitempty"`
	Output string `json:"output,omitempty"`
}

type TaskRunResponse struct {
	Status
	Task       string  `json:"task,omitempty"`
	Output     *string `json:"output,omitempty"`
	ReturnCode *int    `json:"return_code,omitempty"`
}

type TaskLsResponse struct {
	Status
	Tasks []core.Task `json:"tasks,omitzero"`
	Count *int        `json:"count,omitempty"`
}

type TaskInfoResponse struct {
	Status
	TaskInfo map[string]any `json:"task_info,omitempty"`
}

type TaskEditResponse struct {
	Status
	Task    string `json:"task,omitempty"`
	Message string `json:"message,omitempty"`
}

type TaskDepsResponse struct {
	Status
	Task         string   `json:"task,omitempty"`
	Dependencies []string `json:"dependencies,omitzero"`
	Count        *int     `json:"count,omitempty"`
}

type GetConfigResponse struct {
	Status
	Key       string          `json:"key,omitempty"`
	Value     *string         `json:"value,omitempty"`
	Config    json.RawMessage `json:"config,omitempty"`
	RawConfig *string         `json:"raw_config,omitempty"`
}

type CurrentConfigResponse struct {
	Status
	ConfigFiles []string `json:"config_files,omitzero"`
	Count       *int     `json:"count,omitempty"`
}

type SelfUpdateResponse struct {
	Status
	Output *string `json:"output,omitempty"`
}

type FmtConfigResponse struct {
	Status
	FormattedFiles []string `json:"formatted_files"`
}
