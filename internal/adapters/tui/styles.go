package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mikey/phishawk/internal/presenter"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	loadStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("220"))
	labelStyle = lipgloss.NewStyle().Bold(true)
	panelStyle = lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))

	bannerBase = lipgloss.NewStyle().Bold(true).Padding(0, 2).Foreground(lipgloss.Color("15"))
)

// bannerStyle picks the banner colors for a tier
func bannerStyle(tier presenter.Tier) lipgloss.Style {
	switch tier {
	case presenter.TierHigh:
		return bannerBase.Background(lipgloss.Color("160"))
	case presenter.TierMedium:
		return bannerBase.Background(lipgloss.Color("208"))
	default:
		return bannerBase.Background(lipgloss.Color("28"))
	}
}
