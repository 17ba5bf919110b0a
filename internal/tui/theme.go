package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// Theme is the console's color palette. Colors are ANSI 256 codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	ErrorForeground   lipgloss.Color
	SuccessForeground lipgloss.Color
}

// DefaultTheme works on dark terminals.
var DefaultTheme = Theme{
	NormalText:         lipgloss.Color("252"),
	FaintText:          lipgloss.Color("243"),
	SelectedBackground: lipgloss.Color("237"),
	SelectedForeground: lipgloss.Color("231"),
	HeaderForeground:   lipgloss.Color("75"),
	BorderColor:        lipgloss.Color("240"),
	HelpText:           lipgloss.Color("241"),
	ErrorForeground:    lipgloss.Color("203"),
	SuccessForeground:  lipgloss.Color("114"),
}

func (theme Theme) header(text string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).Render(text)
}

func (theme Theme) faint(text string) string {
	return lipgloss.NewStyle().Foreground(theme.FaintText).Render(text)
}

func (theme Theme) row(text string, selected bool) string {
	style := lipgloss.NewStyle().Foreground(theme.NormalText)
	if selected {
		style = style.Background(theme.SelectedBackground).Foreground(theme.SelectedForeground)
		return style.Render("> " + text)
	}
	return style.Render("  " + text)
}

func (theme Theme) failure(text string) string {
	return lipgloss.NewStyle().Foreground(theme.ErrorForeground).Render(text)
}

// noticeBox frames a blocking notice.
func (theme Theme) noticeBox(title, body string, failed bool) string {
	titleColor := theme.SuccessForeground
	if failed {
		titleColor = theme.ErrorForeground
	}
	content := lipgloss.NewStyle().Bold(true).Foreground(titleColor).Render(title) +
		"\n\n" + body + "\n\n" + theme.faint("enter/esc to dismiss")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(1, 2).
		Render(content)
}

// help renders a one-line key legend.
func (theme Theme) help(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return lipgloss.NewStyle().Foreground(theme.HelpText).Render(strings.Join(parts, " • "))
}
