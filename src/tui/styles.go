package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, trimmed to what the dashboard draws with.
const (
	colorPeach    lipgloss.Color = "#fab387"
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"
	colorMauve    lipgloss.Color = "#cba6f7"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
)

const (
	colorAccent  = colorMauve
	colorFocus   = colorLavender
	colorError   = colorRed
	colorWarning = colorYellow
	colorSuccess = colorGreen
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorSubtext0)
	faintStyle   = lipgloss.NewStyle().Foreground(colorOverlay0)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 2)
	cardLabelStyle = lipgloss.NewStyle().Foreground(colorSubtext0)
	monthlyStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	annualStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorSuccess)
	countStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorPeach)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1)

	barFillStyle  = lipgloss.NewStyle().Foreground(colorBlue)
	barEmptyStyle = lipgloss.NewStyle().Foreground(colorSurface0)

	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorSubtext0)
	selectedRowStyle = lipgloss.NewStyle().Bold(true).Foreground(colorFocus)

	urgentStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWarning)
	daysStyle   = lipgloss.NewStyle().Foreground(colorPeach)

	formStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorFocus).
			Padding(0, 1)
	focusedLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(colorFocus)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorAccent).
			Padding(1, 3)

	statusStyle      = lipgloss.NewStyle().Foreground(colorSubtext0)
	statusErrorStyle = lipgloss.NewStyle().Foreground(colorError)
)
