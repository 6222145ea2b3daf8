package ui

import "github.com/charmbracelet/lipgloss"

var (
	cursorRowStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("238")).
			Bold(true)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("212"))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	commandPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229"))

	helpStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder())
)
