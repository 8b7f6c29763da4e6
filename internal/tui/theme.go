package tui

import "github.com/charmbracelet/lipgloss"

// The TUI must stay readable on both light and dark terminal backgrounds, so
// colors are adaptive pairs rather than fixed codes.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted   = ac("240", "243")
	colorAccent  = ac("56", "99")
	colorWarn    = ac("130", "214")
	colorError   = ac("124", "203")
	colorSuccess = ac("28", "78")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	breadcrumbStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	reviewBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	itemTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Align(lipgloss.Center)

	positionStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	publishedStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	infoNoteStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	warnNoteStyle = lipgloss.NewStyle().
			Foreground(colorWarn)

	errorNoteStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)
)
