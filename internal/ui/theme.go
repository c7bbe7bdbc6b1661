package ui

import "github.com/charmbracelet/lipgloss"

// fit's palette: ember for effort, moss for done, slate for rest days.
var (
	Ember = lipgloss.Color("#FF7A1A")
	Flame = lipgloss.Color("#FFB347")
	Moss  = lipgloss.Color("#4CBB17")
	Berry = lipgloss.Color("#D7263D")
	Sky   = lipgloss.Color("#3A86FF")
	Slate = lipgloss.Color("#6C757D")
	Chalk = lipgloss.Color("#F8F9FA")
	Dim   = lipgloss.Color("#666666")

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Ember)

	Subtitle = lipgloss.NewStyle().
			Foreground(Flame)

	Success = lipgloss.NewStyle().
		Foreground(Moss)

	Error = lipgloss.NewStyle().
		Foreground(Berry)

	Warning = lipgloss.NewStyle().
		Foreground(Flame)

	Info = lipgloss.NewStyle().
		Foreground(Sky)

	Muted = lipgloss.NewStyle().
		Foreground(Dim)

	Accent = lipgloss.NewStyle().
		Foreground(Ember).
		Bold(true)

	Banner = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Ember).
		Padding(0, 1)

	// Category badge.
	Tag = lipgloss.NewStyle().
		Foreground(Chalk).
		Background(Slate).
		Padding(0, 1)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Flame).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Chalk)
)

const (
	IconFit      = "🏋 "
	IconFire     = "🔥"
	IconPlan     = "📋"
	IconCalendar = "📅"
	IconBackup   = "🔑"
	IconDone     = "✅"
	IconMissed   = "🔴"
	IconRest     = "💤"
	IconWarn     = "⚠️ "
	IconError    = "✗ "
	IconOk       = "✓ "
	IconArrow    = "→"
	IconDot      = "·"
)
