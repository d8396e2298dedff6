package tui

import (
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title		lipgloss.Style
	status		lipgloss.Style
	cursor		lipgloss.Style

	dir			lipgloss.Style
	file		lipgloss.Style
	duplicate	lipgloss.Style
	hardLink	lipgloss.Style
	groupHead	lipgloss.Style

	dim			lipgloss.Style
	badge		lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		status:		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		cursor:		lipgloss.NewStyle().Reverse(true),

		dir:		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		file:		lipgloss.NewStyle(),
		duplicate:	lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		hardLink:	lipgloss.NewStyle().Foreground(lipgloss.Color("44")),
		groupHead:	lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("171")),

		dim:		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		badge:		lipgloss.NewStyle().Foreground(lipgloss.Color("167")),
	}
}
