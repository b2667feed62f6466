package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/watchfire-io/tasklog/internal/logquery"
	"github.com/watchfire-io/tasklog/internal/models"
)

func renderHeader(mode models.Mode, state logquery.State, spinnerView, server string, width int) string {
	dot := lipgloss.NewStyle().Foreground(colorCyan).Render("●")
	name := lipgloss.NewStyle().Bold(true).Render("tasklog")

	left := fmt.Sprintf(" %s %s  %s", dot, name, hintStyle.Render(server))
	right := fmt.Sprintf("%s  %s ", badgeModeStyle.Render(string(mode)), renderStateBadge(state, spinnerView))

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return headerStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func renderStateBadge(state logquery.State, spinnerView string) string {
	if state == logquery.StateLoading {
		return badgeLoadingStyle.Render(spinnerView + " Loading")
	}
	return badgeIdleStyle.Render("● Idle")
}
