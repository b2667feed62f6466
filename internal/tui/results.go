package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/watchfire-io/tasklog/internal/logquery"
)

// Fixed column widths; the task column takes the rest.
const (
	indexColWidth   = 4
	userColWidth    = 18
	userIDColWidth  = 10
	createdColWidth = 20
	minTaskColWidth = 12
)

// ResultsTable adapts a bubbles table to logquery.Table. Rows are buffered
// and pushed to the bubbles model lazily.
type ResultsTable struct {
	logquery.RowBuffer
	model table.Model
	dirty bool
	width int
}

// NewResultsTable creates an empty results table.
func NewResultsTable() *ResultsTable {
	styles := table.DefaultStyles()
	styles.Header = tableHeaderStyle
	styles.Selected = tableSelectedStyle

	r := &ResultsTable{
		model: table.New(
			table.WithStyles(styles),
			table.WithHeight(10),
		),
	}
	r.SetSize(80, 10)
	return r
}

// Clear implements logquery.Table.
func (r *ResultsTable) Clear() {
	r.RowBuffer.Clear()
	r.dirty = true
}

// Append implements logquery.Table.
func (r *ResultsTable) Append(row logquery.Row) {
	r.RowBuffer.Append(row)
	r.dirty = true
}

// SetSize lays the columns out for the given width and height.
func (r *ResultsTable) SetSize(width, height int) {
	r.width = width
	taskWidth := width - indexColWidth - userColWidth - userIDColWidth - createdColWidth - 10
	if taskWidth < minTaskColWidth {
		taskWidth = minTaskColWidth
	}
	widths := []int{indexColWidth, userColWidth, userIDColWidth, taskWidth, createdColWidth}

	cols := make([]table.Column, len(logquery.Columns))
	for i, title := range logquery.Columns {
		cols[i] = table.Column{Title: title, Width: widths[i]}
	}
	// Rows must be dropped before the columns change shape.
	r.model.SetRows(nil)
	r.model.SetColumns(cols)
	r.model.SetWidth(width)
	if height > 2 {
		r.model.SetHeight(height)
	}
	r.dirty = true
}

// Focus gives the table keyboard focus.
func (r *ResultsTable) Focus() { r.model.Focus() }

// Blur removes keyboard focus.
func (r *ResultsTable) Blur() { r.model.Blur() }

// Update forwards navigation keys to the bubbles table.
func (r *ResultsTable) Update(msg tea.Msg) tea.Cmd {
	r.sync()
	var cmd tea.Cmd
	r.model, cmd = r.model.Update(msg)
	return cmd
}

// Selected returns the highlighted row.
func (r *ResultsTable) Selected() (logquery.Row, bool) {
	r.sync()
	rows := r.Rows()
	i := r.model.Cursor()
	if i < 0 || i >= len(rows) {
		return logquery.Row{}, false
	}
	return rows[i], true
}

// View renders the table, or a placeholder when it is empty.
func (r *ResultsTable) View() string {
	r.sync()
	if r.Len() == 0 {
		return emptyTableStyle.Render("No log entries.")
	}
	return r.model.View()
}

func (r *ResultsTable) sync() {
	if !r.dirty {
		return
	}
	r.dirty = false

	rows := r.Rows()
	out := make([]table.Row, len(rows))
	for i, row := range rows {
		out[i] = table.Row{
			strconv.Itoa(row.Index),
			cell(row.UserName),
			cell(row.UserID),
			cell(row.Task),
			cell(row.Created),
		}
	}
	r.model.SetRows(out)
	// An empty SetRows leaves the cursor at -1.
	if c := r.model.Cursor(); len(out) > 0 && (c < 0 || c >= len(out)) {
		r.model.SetCursor(0)
	}
}

// cell strips terminal escape sequences from server-provided text.
func cell(s string) string {
	return ansi.Strip(s)
}
