package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/watchfire-io/tasklog/internal/daterange"
)

// overlay identifies the modal drawn over the main view.
type overlay int

const (
	overlayNone overlay = iota
	overlayHelp
	overlayPresets
)

// overlayBox renders the active overlay, or "" when none is open.
func (m Model) overlayBox() string {
	switch m.activeOverlay {
	case overlayHelp:
		return renderHelp(m.width)
	case overlayPresets:
		return renderPresetMenu(m.form.picker, m.presetCursor, m.width)
	}
	return ""
}

// renderPresetMenu lists the presets with their resolved spans. The current
// selection is shown above the list with the from/to labels.
func renderPresetMenu(picker *daterange.Picker, cursor, width int) string {
	boxWidth := min(44, width-4)
	boxWidth = max(boxWidth, 24)

	labels := picker.Labels()
	today, maxDate := picker.Today(), picker.MaxDate()
	sel := picker.Selection()

	lines := []string{
		overlayTitleStyle.Render(labels.CustomRange),
		hintStyle.Render(labels.From + " " + picker.FormatDisplayDate(sel.Start) +
			"   " + labels.To + " " + picker.FormatDisplayDate(sel.End)),
		"",
	}
	for i, preset := range picker.Presets() {
		r := preset.Resolve(today, maxDate)
		span := picker.FormatDisplayDate(r.Start) + picker.Separator() + picker.FormatDisplayDate(r.End)
		line := lipgloss.NewStyle().Width(20).Render(preset.Label) + hintStyle.Render(span)
		if i == cursor {
			lines = append(lines, selectedItemStyle.Render("▸ "+line))
		} else {
			lines = append(lines, "  "+line)
		}
	}
	lines = append(lines, "", keyHint("Enter", labels.Apply)+"  "+keyHint("Esc", labels.Cancel))

	return overlayStyle.Width(boxWidth).Render(strings.Join(lines, "\n"))
}

// placeOverlay dims base and draws box centered on top of it.
func placeOverlay(base, box string, width, height int) string {
	rows := strings.Split(base, "\n")
	for i, row := range rows {
		rows[i] = overlayDimStyle.Render(ansi.Strip(row))
	}

	boxRows := strings.Split(box, "\n")
	top := max((height-len(boxRows))/2, 1)
	left := max((width-lipgloss.Width(box))/2, 1)

	for i, fg := range boxRows {
		if row := top + i; row < len(rows) {
			rows[row] = spliceRow(rows[row], fg, left)
		}
	}
	return strings.Join(rows, "\n")
}

// spliceRow writes fg over bg starting at cell column left.
func spliceRow(bg, fg string, left int) string {
	bgWidth := ansi.StringWidth(bg)
	right := ""
	if end := left + ansi.StringWidth(fg); end < bgWidth {
		right = ansi.Cut(bg, end, bgWidth)
	}
	return ansi.Truncate(bg, left, "") + ansi.ResetStyle + fg + ansi.ResetStyle + right
}
