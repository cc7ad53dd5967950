// Package scrape reads the plain-text output of the mise CLI.
//
// The layouts handled here are not a stable interface of mise; keep every
// format assumption inside this package.
package scrape

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/samber/lo"
	"github.com/sandevgo/misemcp/internal/core"
)

type TextDecoder struct{}

var _ core.Decoder = TextDecoder{}

func NewTextDecoder() TextDecoder {
	return TextDecoder{}
}

// Variables splits each line on its first "=". Lines without one are
// skipped and a repeated key keeps its last value.
func (TextDecoder) Variables(out string) map[string]string {
	vars := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		if key, value, ok := strings.Cut(line, "="); ok {
			vars[key] = value
		}
	}
	return vars
}

// Tasks splits each non-blank line on the first whitespace run into the
// task name and its description.
//
// mise does not quote names in this listing, so a name containing
// whitespace would be cut short. Task names accepted by this server never
// contain whitespace.
func (TextDecoder) Tasks(out string) []core.Task {
	return lo.FilterMap(strings.Split(out, "\n"), func(line string, _ int) (core.Task, bool) {
		line = strings.TrimSpace(line)
		if line == "" {
			return core.Task{}, false
		}

		i := strings.IndexFunc(line, unicode.IsSpace)
		if i < 0 {
			return core.Task{Name: line}, true
		}
		return core.Task{
			Name:        line[:i],
			Description: strings.TrimSpace(line[i:]),
		}, true
	})
}

// TaskInfo maps every "Key Name: value" line to key_name -> value.
func (TextDecoder) TaskInfo(name, out string) map[string]any {
	info := map[string]any{"name": name}
	for _, line := range strings.Split(out, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), " ", "_")
		info[key] = strings.TrimSpace(value)
	}
	info["raw_output"] = out
	return info
}

func (TextDecoder) Lines(out string) []string {
	return lo.FilterMap(strings.Split(out, "\n"), func(line string, _ int) (string, bool) {
		line = strings.TrimSpace(line)
		return line, line != ""
	})
}

// Config keeps valid JSON as is, including a bare null.
func (TextDecoder) Config(out string) (json.RawMessage, string, bool) {
	if !json.Valid([]byte(out)) {
		return nil, out, false
	}
	return json.RawMessage(out), "", true
}

func (TextDecoder) FormattedFiles(out string) []string {
	if out == "" {
		return []string{}
	}
	return strings.Split(out, "\n")
}
