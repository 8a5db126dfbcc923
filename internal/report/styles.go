package report

import "github.com/charmbracelet/lipgloss"

var (
	colorBorder = lipgloss.Color("#30363d")
	colorMuted  = lipgloss.Color("#8b949e")
	colorText   = lipgloss.Color("#c9d1d9")
	colorAccent = lipgloss.Color("#58a6ff")
	colorGood   = lipgloss.Color("#3fb950")
	colorFair   = lipgloss.Color("#d29922")
	colorPoor   = lipgloss.Color("#f85149")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	headingStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Width(22)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 70:
		return lipgloss.NewStyle().Foreground(colorGood).Bold(true)
	case score >= 40:
		return lipgloss.NewStyle().Foreground(colorFair).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(colorPoor).Bold(true)
	}
}
