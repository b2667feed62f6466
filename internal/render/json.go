package render

import (
	"encoding/json"
	"io"

	"github.com/watchfire-io/tasklog/internal/logquery"
)

// jsonRow mirrors the /logs field names plus the row index.
type jsonRow struct {
	Index            int    `json:"index"`
	UserName         string `json:"user_name"`
	UserID           string `json:"user_id"`
	Task             string `json:"task"`
	TaskLink         string `json:"task_link"`
	DatetimeCreating string `json:"datetime_creating"`
}

// JSONTable renders rows as a JSON array, one object per row.
type JSONTable struct {
	logquery.RowBuffer
}

// Render writes the array followed by a newline.
func (t *JSONTable) Render(w io.Writer) error {
	out := make([]jsonRow, 0, t.Len())
	for _, r := range t.Rows() {
		out = append(out, jsonRow{
			Index:            r.Index,
			UserName:         r.UserName,
			UserID:           r.UserID,
			Task:             r.Task,
			TaskLink:         r.TaskLink,
			DatetimeCreating: r.Created,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
