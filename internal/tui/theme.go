package tui

import "github.com/charmbracelet/lipgloss"

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorPrimary = ac("#1677ff", "#4096ff")
	colorSuccess = ac("#00b578", "#34d399")
	colorWarning = ac("#ff8f1f", "#fbbf24")
	colorDanger  = ac("#ff3141", "#f87171")
	colorMuted   = ac("240", "243")
)

var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)

	styleMuted = lipgloss.NewStyle().Foreground(colorMuted)

	styleTabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Underline(true)
	styleTab = lipgloss.NewStyle().Foreground(colorMuted)

	styleTagComplete = lipgloss.NewStyle().Foreground(colorSuccess)
	styleTagMissing  = lipgloss.NewStyle().Foreground(colorWarning)

	styleSelected = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)

	styleToastSuccess = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("255")).Background(colorSuccess)
	styleToastFail    = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("255")).Background(colorDanger)

	styleModal = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2)

	stylePreview = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	styleDanger  = lipgloss.NewStyle().Foreground(colorDanger)
)
