package license

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	action    lipgloss.Style
	success   lipgloss.Style
	warning   lipgloss.Style
	section   lipgloss.Style
	empty     lipgloss.Style
	fieldKey  lipgloss.Style
	fieldVal  lipgloss.Style
	card      lipgloss.Style
	user      lipgloss.Style
	assistant lipgloss.Style
	chip      lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		action:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		success:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
		warning:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:   lipgloss.NewStyle().MarginTop(1),
		empty:     lipgloss.NewStyle().Faint(true),
		fieldKey:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Width(16),
		fieldVal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		card:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("69")).Padding(0, 1),
		user:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
		assistant: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")),
		chip:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
