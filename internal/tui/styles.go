package tui

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"

	"pointmap/internal/config"
)

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	hoverFg   = lipgloss.Color("#FFA500")
	borderCol = lipgloss.Color("#243141")

	appStyle     = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle   = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(baseDimFg)
	hoverStyle   = lipgloss.NewStyle().Foreground(hoverFg).Bold(true)
	tooltipStyle = lipgloss.NewStyle().Foreground(baseFg).Background(lipgloss.Color("#1A1A2E"))
)

func swatch(c color.RGBA) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(config.Hex(c))).Render("●")
}
