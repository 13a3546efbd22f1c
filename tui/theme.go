package tui

import (
	"leadsweb/models"

	"github.com/charmbracelet/lipgloss"
)

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted    lipgloss.TerminalColor = ac("240", "243")
	colorAccent   lipgloss.TerminalColor = ac("27", "75")
	colorError    lipgloss.TerminalColor = ac("160", "203")
	colorSelected lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorInsert   lipgloss.TerminalColor = ac("28", "114")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	selectedStyle = lipgloss.NewStyle().Background(colorSelected).Bold(true)
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	editStyle     = lipgloss.NewStyle().Foreground(colorAccent)
	insertStyle   = lipgloss.NewStyle().Foreground(colorInsert)
	deleteStyle   = lipgloss.NewStyle().Foreground(colorError).Strikethrough(true)
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1)
)

// statusStyle colours a status like the CLI list does
func statusStyle(st models.Status) lipgloss.Style {
	switch st {
	case models.StatusNew:
		return lipgloss.NewStyle().Foreground(ac("33", "81"))
	case models.StatusInProgress:
		return lipgloss.NewStyle().Foreground(ac("136", "221"))
	case models.StatusConverted:
		return lipgloss.NewStyle().Foreground(colorInsert)
	default:
		return lipgloss.NewStyle()
	}
}
