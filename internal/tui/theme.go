package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the console uses.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface2 lipgloss.Color = "#585b70"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
)

const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorMuted   = colorSubtext0
	colorBorder  = colorSurface2
)

// chartColors cycles through the statistics bars.
var chartColors = []lipgloss.Color{colorGreen, colorTeal, colorPeach, colorBlue, colorYellow, colorLavender}

var (
	headerBarStyle = lipgloss.NewStyle().Background(colorMantle).Foreground(colorText)
	brandStyle     = lipgloss.NewStyle().Foreground(colorAccent).Background(colorMantle).Bold(true)
	adminBadge     = lipgloss.NewStyle().Foreground(colorMantle).Background(colorPeach).Bold(true).Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Background(colorSurface0).
			Foreground(colorAccent).
			Bold(true).
			Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().
				Background(colorMantle).
				Foreground(colorOverlay1).
				Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	keyStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	favStyle   = lipgloss.NewStyle().Foreground(colorYellow)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	selectedCardStyle = cardStyle.BorderForeground(colorFocus)

	statCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 2).
			Align(lipgloss.Center)
	statValueStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	activeFilterStyle   = lipgloss.NewStyle().Foreground(colorMantle).Background(colorFocus).Padding(0, 1)
	inactiveFilterStyle = lipgloss.NewStyle().Foreground(colorMuted).Background(colorSurface0).Padding(0, 1)

	noticeOKStyle  = lipgloss.NewStyle().Foreground(colorSuccess).Background(colorSurface0)
	noticeErrStyle = lipgloss.NewStyle().Foreground(colorError).Background(colorSurface0)
	warnStyle      = lipgloss.NewStyle().Foreground(colorWarning)
)
