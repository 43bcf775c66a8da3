package cli

import "github.com/charmbracelet/lipgloss"

// Styles for summary and list output
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246"))

	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("120"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("yellow")).
			Bold(true)
)
