package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	selectFg  = lipgloss.Color("#FFA500")
	borderCol = lipgloss.Color("#243141")

	appStyle    = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(baseDimFg)
	cursorStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	markStyle   = lipgloss.NewStyle().Foreground(selectFg)
	buttonStyle = lipgloss.NewStyle().Foreground(baseFg).Background(accentFg).Padding(0, 1)
	axisStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
)

// nodeStyle colors a canvas cell by marker color, faint for deep markers.
func nodeStyle(color string, opacity float64) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	if opacity < 0.6 {
		s = s.Faint(true)
	}
	return s
}
