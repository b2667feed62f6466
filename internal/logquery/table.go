package logquery

import "github.com/watchfire-io/tasklog/internal/models"

// Columns are the table headers in display order.
var Columns = []string{"#", "User", "User ID", "Task", "Created"}

// Row is one rendered log entry. Index is the 1-based position in the
// response, not a persistent ID.
type Row struct {
	Index    int
	UserName string
	UserID   string
	Task     string
	TaskLink string
	Created  string
}

// Table is the render target. Implementations must not reorder rows.
type Table interface {
	Clear()
	Append(row Row)
}

// RowFor builds the row for the entry at zero-based position i.
func RowFor(i int, e models.LogEntry) Row {
	return Row{
		Index:    i + 1,
		UserName: e.UserName,
		UserID:   e.UserID.String(),
		Task:     e.Task,
		TaskLink: e.TaskLink,
		Created:  e.DatetimeCreating,
	}
}

// RenderLogs replaces the table contents with one row per entry, in order.
func RenderLogs(t Table, entries []models.LogEntry) {
	t.Clear()
	for i, e := range entries {
		t.Append(RowFor(i, e))
	}
}

// RowBuffer is an in-memory Table. Renderers embed it and format its rows.
type RowBuffer struct {
	rows []Row
}

// Clear removes all rows.
func (b *RowBuffer) Clear() {
	b.rows = b.rows[:0]
}

// Append adds a row at the end.
func (b *RowBuffer) Append(row Row) {
	b.rows = append(b.rows, row)
}

// Rows returns the buffered rows.
func (b *RowBuffer) Rows() []Row {
	return b.rows
}

// Len returns the number of rows.
func (b *RowBuffer) Len() int {
	return len(b.rows)
}
