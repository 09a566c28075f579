package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/ebrowne/newslens/internal/bias"
)

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorLeft    = lipgloss.AdaptiveColor{Light: "#D32F2F", Dark: "#EF5350"}
	colorCenter  = lipgloss.AdaptiveColor{Light: "#388E3C", Dark: "#66BB6A"}
	colorRight   = lipgloss.AdaptiveColor{Light: "#1976D2", Dark: "#42A5F5"}

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	metaStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	scoreStyle = lipgloss.NewStyle().
			Bold(true)
)

// biasBadge renders a colored category badge for a bias record.
func biasBadge(rec bias.Record) string {
	var color lipgloss.AdaptiveColor
	switch rec.Category {
	case bias.CategoryFarLeft, bias.CategoryLeft:
		color = colorLeft
	case bias.CategoryRight, bias.CategoryFarRight:
		color = colorRight
	case bias.CategoryCenter:
		color = colorCenter
	default:
		color = colorDim
	}

	badge := lipgloss.NewStyle().Bold(true).Foreground(color)
	return badge.Render(fmt.Sprintf("[%s %.2f]", rec.Category.DisplayName(), rec.CombinedBias))
}
