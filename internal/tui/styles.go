package tui

import "github.com/charmbracelet/lipgloss"

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#565f89"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))
)
