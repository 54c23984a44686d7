package tui

import "github.com/charmbracelet/lipgloss"

const (
	mutedFGColor  = "#808080"
	accentFGColor = "#f5c542"
	errorFGColor  = "#ff5f5f"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	yearStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(mutedFGColor))
	currentYear  = lipgloss.NewStyle().Foreground(lipgloss.Color(accentFGColor)).Bold(true).Underline(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#d0d0d0"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(accentFGColor))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(errorFGColor))
	matchStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(accentFGColor)).Bold(true)
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	topPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("245")).
			Padding(0, 1)
)
