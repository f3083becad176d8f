package console

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha accents used for console output
var (
	Subtext0 = lipgloss.Color("#a6adc8")
	Green    = lipgloss.Color("#a6e3a1")
	Yellow   = lipgloss.Color("#f9e2af")
	Red      = lipgloss.Color("#f38ba8")
	Mauve    = lipgloss.Color("#cba6f7")
	Sky      = lipgloss.Color("#89dceb")
)
