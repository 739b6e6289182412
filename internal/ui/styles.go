package ui

import "github.com/charmbracelet/lipgloss"

const (
	accent = lipgloss.Color("#2EC4B6")
	soft   = lipgloss.Color("#9BE3DA")
	muted  = lipgloss.Color("#6B7280")
	danger = lipgloss.Color("#FF4757")
	amber  = lipgloss.Color("#FFB84D")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			MarginTop(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(muted).
			MarginBottom(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(muted).
			Width(14)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(danger).
			Bold(true)

	WarnStyle = lipgloss.NewStyle().
			Foreground(amber)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(soft).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(muted).
			MarginTop(1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2)
)
