package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorError = lipgloss.Color("#E5534B")
	colorMuted = lipgloss.Color("#768390")
	colorTitle = lipgloss.Color("#6CB6FF")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorTitle)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle  = lipgloss.NewStyle().Foreground(colorError)
	deviceStyle = lipgloss.NewStyle().PaddingLeft(1).MarginBottom(1)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder())
	stopButtonStyle = buttonStyle.
			BorderForeground(colorError).
			Foreground(colorError)
	disabledButtonStyle = buttonStyle.
				BorderForeground(colorMuted).
				Foreground(colorMuted)
)
