package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sandevgo/misemcp/internal/core"
	"github.com/sandevgo/misemcp/internal/tools"
)

// RenderTools lists every tool with its parameters. Required parameters
// are marked with "*".
func RenderTools(defs []tools.Definition) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("TOOLS"))
	b.WriteString("\n")

	width := 0
	for _, d := range defs {
		width = max(width, lipgloss.Width(d.Name))
	}

	for _, d := range defs {
		name := UsageStyle.Render(fmt.Sprintf("%-*s", width, d.Name))
		fmt.Fprintf(&b, "  %s  %s\n", name, DescStyle.Render(d.Description))

		for _, p := range d.Params {
			marker := " "
			if p.Required {
				marker = "*"
			}
			param := FlagStyle.Render(fmt.Sprintf("%s%s (%s)", marker, p.Name, p.Type))
			fmt.Fprintf(&b, "  %*s    %s  %s\n", width, "", param, DescStyle.Render(p.Description))
		}
	}

	return b.String()
}

// RenderHistory prints audit entries one per line, newest first.
func RenderHistory(entries []core.AuditEntry) string {
	if len(entries) == 0 {
		return DescStyle.Render("no tool calls recorded") + "\n"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("HISTORY"))
	b.WriteString("\n")

	for _, e := range entries {
		status := OkStyle.Render("ok  ")
		if !e.Success {
			status = FailStyle.Render("fail")
		}

		line := fmt.Sprintf("  %s  %s  %-14s %8s",
			e.CreatedAt.Local().Format(time.DateTime),
			status,
			e.Tool,
			e.Duration.Round(time.Millisecond),
		)
		if !e.Success {
			line += "  " + DescStyle.Render(fmt.Sprintf("[%s] %s", e.ErrorKind, e.Error))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
