package availability

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	date    lipgloss.Style
	count   lipgloss.Style
	detail  lipgloss.Style
	section lipgloss.Style
	empty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		date:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		count:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		detail:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		section: lipgloss.NewStyle().MarginTop(1),
		empty:   lipgloss.NewStyle().Faint(true),
	}
}
