package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/watchfire-io/tasklog/internal/logquery"
)

var (
	colorWhite = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim   = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorCyan  = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	indexStyle  = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1).Align(lipgloss.Right)
	linkStyle   = lipgloss.NewStyle().Foreground(colorCyan).Padding(0, 1)
	emptyStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// DefaultMaxCellWidth bounds each text cell; longer values are truncated.
const DefaultMaxCellWidth = 48

// TextTable renders rows as a bordered terminal table.
type TextTable struct {
	logquery.RowBuffer
	MaxCellWidth int
	EmptyText    string
}

// NewTextTable creates a text table with default limits.
func NewTextTable() *TextTable {
	return &TextTable{
		MaxCellWidth: DefaultMaxCellWidth,
		EmptyText:    "No log entries.",
	}
}

// Render writes the table. An empty table prints EmptyText instead of an
// empty grid.
func (t *TextTable) Render(w io.Writer) error {
	if t.Len() == 0 {
		_, err := fmt.Fprintln(w, emptyStyle.Render(t.EmptyText))
		return err
	}

	rows := make([][]string, 0, t.Len())
	for _, r := range t.Rows() {
		rows = append(rows, t.Cells(r))
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(logquery.Columns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return indexStyle
			case col == 3:
				return linkStyle
			default:
				return cellStyle
			}
		})

	_, err := fmt.Fprintln(w, tbl.String())
	return err
}

// Cells returns the display cells of r. The task column shows the link
// target next to the task title since a terminal has no anchors. Escape
// sequences in server data are stripped before display.
func (t *TextTable) Cells(r logquery.Row) []string {
	task := t.truncate(r.Task)
	if r.TaskLink != "" {
		task += " (" + t.truncate(r.TaskLink) + ")"
	}
	return []string{
		strconv.Itoa(r.Index),
		t.truncate(r.UserName),
		t.truncate(r.UserID),
		task,
		ansi.Strip(r.Created),
	}
}

func (t *TextTable) truncate(s string) string {
	if t.MaxCellWidth <= 0 {
		return s
	}
	return ansi.Truncate(ansi.Strip(s), t.MaxCellWidth, "…")
}
