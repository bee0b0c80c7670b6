// Package ui holds the interactive pieces of todoai: the confirmation prompt,
// the project/agent picker, and terminal styling.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Accent is the TODOforAI orange used for highlights.
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#F96E2E"))
	// Muted renders labels and secondary text.
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	// Link renders URLs.
	Link = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	titleStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F96E2E"))
	selectedItemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F96E2E"))
	itemStyle         = lipgloss.NewStyle().PaddingLeft(2)
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).PaddingLeft(2)
)
