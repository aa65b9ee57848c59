package tui

import "github.com/charmbracelet/lipgloss"

const (
	userColor      = "#7547FF"
	assistantColor = "#E5B7E5"
	successColor   = "#10B981"
	errorColor     = "#EF4444"
	dimColor       = "#6B7280"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(userColor)).
			Bold(true)

	UserStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(userColor)).
			Bold(true)

	AssistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(assistantColor)).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(successColor))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorColor))

	// PanelStyle frames the feedback panel.
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(assistantColor)).
			Padding(0, 1)

	SelectedMoodStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(userColor)).
				Bold(true).
				Underline(true)
)
