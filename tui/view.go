package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

const helpText = "e enrich · ←/→ column · ↑/↓ row · enter edit · t add row · f add column · L label · D drop row · X drop column · q quit"

func (a *App) View() string {
	sections := []string{
		titleStyle.Render("Enrichment Grid"),
		boxStyle.Render(a.table.View()),
		mutedStyle.Render(summary(a.snap)),
	}

	switch {
	case a.mode != modeBrowse:
		sections = append(sections, a.input.View(), mutedStyle.Render("enter save · esc cancel"))
	case a.err != nil:
		sections = append(sections, errorStyle.Render("Error: "+a.err.Error()))
	case a.statusMsg != "":
		sections = append(sections, statusStyle.Render(a.statusMsg))
	}

	if a.mode == modeBrowse {
		sections = append(sections, mutedStyle.Render(helpText))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
