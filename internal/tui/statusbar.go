package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/watchfire-io/tasklog/internal/models"
)

func renderStatusBar(m *Model, width int) string {
	if m.err != nil {
		return renderErrorBar(m.err.Error(), width)
	}

	if m.notice != "" {
		return renderNoticeBar(m.notice, width)
	}

	left := " " + getKeyHints(m)
	right := hintStyle.Render(fmt.Sprintf("%d rows", m.results.Len())) + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return statusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func getKeyHints(m *Model) string {
	switch m.activeOverlay {
	case overlayPresets:
		return keyHint("j/k", "navigate") + "  " + keyHint("Enter", "apply") + "  " + keyHint("Esc", "cancel")
	case overlayHelp:
		return keyHint("Esc", "close")
	}

	base := keyHint("Ctrl+q", "quit") + "  " + keyHint("Ctrl+h", "help") + "  " + keyHint("Tab", "switch") +
		"  " + keyHint("Enter", "query")

	switch m.focus {
	case focusProject:
		hints := base + "  " + keyHint("←/→", "project")
		if m.mode == models.ModeRange {
			hints += "  " + keyHint("p", "presets") + "  " + keyHint("r", "reset")
		}
		return hints
	case focusDate:
		return base + "  " + keyHint("", "(type a date)")
	case focusTable:
		return base + "  " + keyHint("j/k", "scroll")
	}
	return base
}

func keyHint(k, desc string) string {
	if k == "" {
		return hintStyle.Render(desc)
	}
	return keyStyle.Render(k) + " " + hintStyle.Render(desc)
}

func renderErrorBar(msg string, width int) string {
	return statusBarStyle.
		Background(colorRed).
		Width(width).
		Render(" " + msg)
}

func renderNoticeBar(msg string, width int) string {
	return statusBarStyle.
		Width(width).
		Render(" " + lipgloss.NewStyle().Foreground(colorGreen).Render(msg))
}
