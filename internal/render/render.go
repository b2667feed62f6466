// Package render turns logquery rows into text, HTML or JSON output.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/watchfire-io/tasklog/internal/logquery"
)

// Format names accepted on the command line.
const (
	FormatText = "text"
	FormatHTML = "html"
	FormatJSON = "json"
)

// Formats lists the supported formats.
var Formats = []string{FormatText, FormatHTML, FormatJSON}

// Renderer is a Table that can write its rows out.
type Renderer interface {
	logquery.Table
	Render(w io.Writer) error
}

// New returns the renderer for format.
func New(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case FormatText:
		return NewTextTable(), nil
	case FormatHTML:
		return NewHTMLTable(true), nil
	case FormatJSON:
		return &JSONTable{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (valid: %s)", format, strings.Join(Formats, ", "))
	}
}
