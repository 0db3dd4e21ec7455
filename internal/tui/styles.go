// internal/tui/styles.go
package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/bleuboard/internal/analytics"
	"github.com/mwiater/bleuboard/internal/records"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1).Width(24)
	cardTitle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	cardValue    = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
	upStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	downStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// tierColors maps each score tier to its badge background.
var tierColors = map[analytics.Tier]lipgloss.Color{
	analytics.TierTop:  lipgloss.Color("42"),
	analytics.TierHigh: lipgloss.Color("39"),
	analytics.TierMid:  lipgloss.Color("214"),
	analytics.TierLow:  lipgloss.Color("196"),
}

var versionColors = map[records.Version]lipgloss.Color{
	records.V1: lipgloss.Color("61"),
	records.V2: lipgloss.Color("103"),
}

// TierBadge renders score as a badge coloured by its tier.
func TierBadge(score float64) string {
	tier := analytics.ScoreTier(score)
	return lipgloss.NewStyle().
		Background(tierColors[tier]).
		Foreground(lipgloss.Color("0")).
		Padding(0, 1).
		Render(fmt.Sprintf("%.2f", score))
}

// VersionBadge renders the model version label.
func VersionBadge(v records.Version) string {
	color, ok := versionColors[v]
	if !ok {
		color = lipgloss.Color("240")
	}
	return lipgloss.NewStyle().Background(color).Foreground(lipgloss.Color("230")).Padding(0, 1).Render(string(v))
}

func filterBadge(f analytics.VersionFilter) string {
	return lipgloss.NewStyle().Background(lipgloss.Color("229")).Foreground(lipgloss.Color("0")).Padding(0, 1).MarginLeft(1).Render("Version: " + f.Label())
}

func chartBadge(c analytics.ChartType) string {
	return lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("0")).Padding(0, 1).MarginLeft(1).Render("Chart: " + string(c))
}

func trendArrow(improved bool) string {
	if improved {
		return upStyle.Render("▲")
	}
	return downStyle.Render("▼")
}
