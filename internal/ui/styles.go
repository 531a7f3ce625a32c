package ui

import "github.com/charmbracelet/lipgloss"

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted    = ac("240", "243")
	colorAccent   = ac("#4F46E5", "#818CF8")
	colorError    = ac("#B91C1C", "#F87171")
	colorBorder   = ac("250", "240")
	colorSelected = ac("#e9e9e9", "#262626")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	headerCursor  = headerStyle.Foreground(colorAccent)
	focusedRow    = lipgloss.NewStyle().Background(colorSelected).Bold(true)
	selectedMark  = lipgloss.NewStyle().Foreground(colorAccent)
	chipStyle     = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder)
	activeControl = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1)
	labelStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	navActive     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Underline(true)
)

// Metric card backgrounds match the dashboard cards: total, completed,
// in progress, blocked.
var cardColors = []lipgloss.Color{"#6366F1", "#22C55E", "#3B82F6", "#EF4444"}

func cardStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(cardColors[i%len(cardColors)]).
		Padding(0, 2).
		MarginRight(1)
}

var chartColors = []lipgloss.Color{"#0088FE", "#00C49F", "#FFBB28", "#FF8042", "#A569BD", "#3498DB"}
