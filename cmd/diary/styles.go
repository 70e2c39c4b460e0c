// ABOUTME: Lipgloss styles shared by the panel and card views.
// ABOUTME: Stats panels, job cards, and tip boxes use these.
package main

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#8BC34A")
	muted  = lipgloss.Color("#8B949E")
	warn   = lipgloss.Color("#E3B341")

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1).
			Width(36)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle = lipgloss.NewStyle().Foreground(muted)
	warnStyle  = lipgloss.NewStyle().Foreground(warn)
)
