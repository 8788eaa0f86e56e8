package monitor

import (
	"github.com/charmbracelet/lipgloss"
)

// Dashboard color palette
const (
	ColorDarkBg    = lipgloss.Color("#0A0A0F")
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorBorder    = lipgloss.Color("#2A2A4A")

	// Semantic colors
	ColorHealthy  = lipgloss.Color("#39FF14") // Neon green
	ColorWarning  = lipgloss.Color("#FFAA00") // Electric amber
	ColorCritical = lipgloss.Color("#FF0055") // Hot red-pink

	// Text colors
	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent    = lipgloss.Color("#FF2E97") // Neon pink
	ColorActiveTab = lipgloss.Color("#FFE600") // Selected tab, bold yellow
	ColorGauge     = lipgloss.Color("#00BFFF") // TPS gauge
)

// Base styles for the dashboard
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	TabBarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	TabActiveStyle = lipgloss.NewStyle().
			Foreground(ColorActiveTab).
			Bold(true)

	TabDividerStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	// Card styles
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	CardTitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	// Status styles
	StatusOnlineStyle = lipgloss.NewStyle().
				Foreground(ColorHealthy).
				Bold(true)

	StatusOfflineStyle = lipgloss.NewStyle().
				Foreground(ColorCritical).
				Bold(true)

	FlagOKStyle = lipgloss.NewStyle().
			Foreground(ColorHealthy)

	FlagProblemStyle = lipgloss.NewStyle().
				Foreground(ColorWarning)

	RefreshingStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)

// Status indicator characters
const (
	StatusOnline  = "◉"
	StatusOffline = "◌"
)

// RefreshSpinnerFrames animate the header while a refresh is in flight.
var RefreshSpinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// StatusText returns the styled Online/Offline label for a responsiveness flag.
func StatusText(online bool) string {
	if online {
		return StatusOnlineStyle.Render(StatusOnline + " Online")
	}
	return StatusOfflineStyle.Render(StatusOffline + " Offline")
}

// FlagText renders a diagnostic flag. problem is true when the flag
// indicates something is wrong.
func FlagText(label string, problem bool) string {
	if problem {
		return FlagProblemStyle.Render(label)
	}
	return FlagOKStyle.Render(label)
}
