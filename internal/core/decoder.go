package core

import "encoding/json"

// Decoder turns mise output into values. It is the only place that knows
// the CLI's text layout; a structured-output decoder can replace it
// without changing any tool handler.
type Decoder interface {
	// Variables parses `mise env` output (KEY=VALUE lines).
	Variables(out string) map[string]string
	// Tasks parses `mise tasks ls` output.
	Tasks(out string) []Task
	// TaskInfo parses `mise tasks info <task>` output. The result always
	// carries "name" and "raw_output".
	TaskInfo(name, out string) map[string]any
	// Lines returns trimmed, non-blank lines.
	Lines(out string) []string
	// Config parses `mise config get` output. ok is false when the output
	// is not JSON, in which case raw holds the text.
	Config(out string) (config json.RawMessage, raw string, ok bool)
	// FormattedFiles parses `mise fmt` output.
	FormattedFiles(out string) []string
}
