package ui

import "github.com/charmbracelet/lipgloss"

// streakcard's palette — ember oranges for streaks, cool slate for chrome.
var (
	Ember   = lipgloss.Color("#FF7B42")
	Flame   = lipgloss.Color("#FFA657")
	Slate   = lipgloss.Color("#8B949E")
	Sky     = lipgloss.Color("#58A6FF")
	Moss    = lipgloss.Color("#3FB950")
	Crimson = lipgloss.Color("#F85149")
	Dim     = lipgloss.Color("#666666")
	Bright  = lipgloss.Color("#FFFFFF")

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Ember)

	Success = lipgloss.NewStyle().
		Foreground(Moss)

	Error = lipgloss.NewStyle().
		Foreground(Crimson)

	Warning = lipgloss.NewStyle().
		Foreground(Flame)

	Info = lipgloss.NewStyle().
		Foreground(Sky)

	Muted = lipgloss.NewStyle().
		Foreground(Dim)

	Accent = lipgloss.NewStyle().
		Foreground(Ember).
		Bold(true)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Flame).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Bright)
)

// Icon constants.
const (
	IconFire  = "🔥"
	IconCal   = "📅"
	IconChart = "📈"
	IconKey   = "🔑"
	IconWarn  = "⚠️ "
	IconError = "✗ "
	IconOk    = "✓ "
)
