package render

import (
	"html/template"
	"io"

	"github.com/watchfire-io/tasklog/internal/logquery"
)

// Row markup. html/template escapes every field for its context and
// replaces unsafe URL schemes in href with "#ZgotmplZ".
const rowsTemplate = `{{define "rows"}}{{range .}}<tr><td>{{.Index}}</td><td>{{.UserName}}</td><td>{{.UserID}}</td><td><a href="{{.TaskLink}}">{{.Task}}</a></td><td>{{.Created}}</td></tr>
{{end}}{{end}}`

const documentTemplate = `{{define "document"}}<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Task log</title></head>
<body>
<table id="log-table">
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody id="log-table-body">
{{template "rows" .Rows}}</tbody>
</table>
</body>
</html>
{{end}}`

var htmlTemplates = template.Must(template.New("html").Parse(rowsTemplate + documentTemplate))

// HTMLTable renders rows as <tr> elements for a <tbody>.
type HTMLTable struct {
	logquery.RowBuffer
	document bool
}

// NewHTMLTable creates an HTML renderer. With document set, Render wraps the
// rows in a complete page with a header row; otherwise it writes only the
// <tr> fragment.
func NewHTMLTable(document bool) *HTMLTable {
	return &HTMLTable{document: document}
}

// Render writes the HTML.
func (t *HTMLTable) Render(w io.Writer) error {
	rows := t.Rows()
	if rows == nil {
		rows = []logquery.Row{}
	}
	if !t.document {
		return htmlTemplates.ExecuteTemplate(w, "rows", rows)
	}
	return htmlTemplates.ExecuteTemplate(w, "document", struct {
		Columns []string
		Rows    []logquery.Row
	}{
		Columns: logquery.Columns,
		Rows:    rows,
	})
}
