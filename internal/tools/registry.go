package tools

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

type ParamType string

const (
	ParamString ParamType = "string"
	ParamBool   ParamType = "boolean"
)

type Param struct {
	Name        string
	Type        ParamType
	Required    bool
	Description string
}

// Definition describes one tool independently of the transport that
// exposes it.
type Definition struct {
	Name        string
	Description string
	Params      []Param
	ReadOnly    bool
	Handler     func(ctx context.Context, args map[string]any) (any, error)
}

// bind adapts a typed handler to loosely typed arguments. Only argument
// decoding can fail; the handler itself always produces a response.
func bind[P, R any](fn func(context.Context, P) R) func(context.Context, map[string]any) (any, error) {
	return func(ctx context.Context, args map[string]any) (any, error) {
		var p P
		if err := decodeArgs(args, &p); err != nil {
			return nil, err
		}
		return fn(ctx, p), nil
	}
}

func decodeArgs(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func str(name, desc string, required bool) Param {
	return Param{Name: name, Type: ParamString, Required: required, Description: desc}
}

func boolean(name, desc string) Param {
	return Param{Name: name, Type: ParamBool, Description: desc}
}

func (h *Handlers) Definitions() []Definition {
	return []Definition{
		{
			Name:        "set_env",
			Description: "Set an environment variable in mise.",
			Params: []Param{
				str("key", "Environment variable name", true),
				str("value", "Environment variable value", true),
				str("file", "Optional file to update (.env or .mise.toml)", false),
			},
			Handler: bind(h.SetEnv),
		},
		{
			Name:        "get_env",
			Description: "Get one environment variable, or all of them when no key is given.",
			Params: []Param{
				str("key", "Optional environment variable to get", false),
			},
			ReadOnly: true,
			Handler:  bind(h.GetEnv),
		},
		{
			Name:        "unset_env",
			Description: "Unset an environment variable in mise.",
			Params: []Param{
				str("key", "Environment variable name to unset", true),
				str("file", "Optional file to update (.env or .mise.toml)", false),
			},
			Handler: bind(h.UnsetEnv),
		},
		{
			Name:        "task_run",
			Description: "Run a mise task.",
			Params: []Param{
				str("task", "Task name to run", true),
				str("args", "Optional whitespace separated arguments passed to the task", false),
				str("cd", "Optional directory to run the task in", false),
			},
			Handler: bind(h.TaskRun),
		},
		{
			Name:        "task_ls",
			Description: "List available mise tasks.",
			Params: []Param{
				boolean("hidden", "Include hidden tasks"),
			},
			ReadOnly: true,
			Handler:  bind(h.TaskLs),
		},
		{
			Name:        "task_info",
			Description: "Get detailed information about a task.",
			Params: []Param{
				str("task", "Task name to get info for", true),
			},
			ReadOnly: true,
			Handler:  bind(h.TaskInfo),
		},
		{
			Name:        "task_edit",
			Description: "Open a task for editing in the configured editor.",
			Params: []Param{
				str("task", "Task name to edit", true),
				str("editor", "Optional editor to use (defaults to $EDITOR)", false),
			},
			Handler: bind(h.TaskEdit),
		},
		{
			Name:        "task_deps",
			Description: "List the dependencies of a task.",
			Params: []Param{
				str("task", "Task name to get dependencies for", true),
			},
			ReadOnly: true,
			Handler:  bind(h.TaskDeps),
		},
		{
			Name:        "get_config",
			Description: "Get one mise setting, or the whole configuration when no key is given.",
			Params: []Param{
				str("key", "Optional dotted configuration key", false),
			},
			ReadOnly: true,
			Handler:  bind(h.GetConfig),
		},
		{
			Name:        "current_config",
			Description: "List the config files mise is currently using.",
			ReadOnly:    true,
			Handler: bind(func(ctx context.Context, _ struct{}) CurrentConfigResponse {
				return h.CurrentConfig(ctx)
			}),
		},
		{
			Name:        "self_update",
			Description: "Update the mise CLI to the latest or a given version.",
			Params: []Param{
				str("version", "Optional version to update to", false),
				boolean("force", "Update even if already on the latest version"),
			},
			Handler: bind(h.SelfUpdate),
		},
		{
			Name:        "fmt_config",
			Description: "Format mise configuration files.",
			Params: []Param{
				str("path", "Optional path to format (defaults to the current directory)", false),
			},
			Handler: bind(h.FmtConfig),
		},
	}
}

// Call invokes the tool registered under name.
func (h *Handlers) Call(ctx context.Context, name string, args map[string]any) (any, error) {
	def, found := lo.Find(h.Definitions(), func(d Definition) bool {
		return d.Name == name
	})
	if !found {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
	return def.Handler(ctx, args)
}
