package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A0A0A0"))

	focusedHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Underline(true).
				Foreground(lipgloss.Color("#FAFAFA"))

	rowStyle    = lipgloss.NewStyle()
	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#3C3C3C"))
	draggedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1E1E1E")).
			Background(lipgloss.Color("#F4BF4F"))
	shiftedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F4BF4F"))
	placeholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#5C5C5C"))
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#808080"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87"))
	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#5FD787"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#F4BF4F")).
			Padding(1, 2)
)
