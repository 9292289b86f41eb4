package profile

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	name       lipgloss.Style
	detail     lipgloss.Style
	warning    lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	label      lipgloss.Style
	meta       lipgloss.Style
	badge      lipgloss.Style
	barBracket lipgloss.Style
	barAsset   lipgloss.Style
	barEx      lipgloss.Style
	stateOK    lipgloss.Style
	statePend  lipgloss.Style
	stateNone  lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		name:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		label:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		meta:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		badge:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barAsset:   lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEx:      lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		stateOK:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		statePend:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		stateNone:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
