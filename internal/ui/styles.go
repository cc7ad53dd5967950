// Package ui renders terminal output for the CLI.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	DescStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	FlagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	OkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	FailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)
