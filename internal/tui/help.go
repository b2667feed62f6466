package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title string
	keys  []helpKey
}

type helpKey struct {
	key  string
	desc string
}

var helpSections = []helpSection{
	{
		title: "Global",
		keys: []helpKey{
			{"Ctrl+q / Ctrl+c", "Quit"},
			{"Ctrl+h", "Toggle help"},
			{"Tab", "Cycle focus"},
			{"Enter / Ctrl+r", "Run query"},
		},
	},
	{
		title: "Project",
		keys: []helpKey{
			{"←/→ h/l", "Previous / next project"},
			{"p", "Open date presets"},
			{"r", "Reset to default range"},
		},
	},
	{
		title: "Date",
		keys: []helpKey{
			{"(type)", "DD.MM.YYYY - DD.MM.YYYY"},
			{"", "or YYYY-MM-DD"},
		},
	},
	{
		title: "Results",
		keys: []helpKey{
			{"j/k ↑/↓", "Scroll rows"},
			{"PgUp/PgDn", "Page"},
		},
	},
	{
		title: "Presets",
		keys: []helpKey{
			{"j/k ↑/↓", "Navigate"},
			{"Enter", "Apply"},
			{"Esc", "Cancel"},
		},
	},
}

// renderHelp renders the help overlay content.
func renderHelp(width int) string {
	maxWidth := 60
	if width-4 < maxWidth {
		maxWidth = width - 4
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	title := overlayTitleStyle.Render("Keyboard Shortcuts")
	sections := make([]string, 0, len(helpSections)*4+3)
	sections = append(sections, title)

	for _, sec := range helpSections {
		header := lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Render(sec.title)
		sections = append(sections, "", header)

		for _, k := range sec.keys {
			keyCol := lipgloss.NewStyle().
				Width(18).
				Foreground(colorWhite).
				Bold(true).
				Render(k.key)
			descCol := lipgloss.NewStyle().
				Foreground(colorDim).
				Render(k.desc)
			sections = append(sections, "  "+keyCol+descCol)
		}
	}

	sections = append(sections, "", lipgloss.NewStyle().Foreground(colorDim).Render("Press Esc or Ctrl+h to close"))

	content := strings.Join(sections, "\n")
	return overlayStyle.Width(maxWidth).Render(content)
}
