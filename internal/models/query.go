package models

import "time"

// DateLayout is the wire format for every date parameter sent to /logs.
const DateLayout = "2006-01-02"

// Mode selects which date input the widget exposes.
type Mode string

const (
	// ModeRange sends startDate and endDate (range picker).
	ModeRange Mode = "range"
	// ModeSingle sends an optional single date (plain date input).
	ModeSingle Mode = "single"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeRange || m == ModeSingle
}

// DateRange is an inclusive calendar range. Only the date part is meaningful.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// QueryState is read from the widget inputs at submit time and never stored.
// In ModeRange, Range is used; in ModeSingle, Date is used. A nil value means
// no date filter.
type QueryState struct {
	ProjectID string
	Mode      Mode
	Range     *DateRange
	Date      *time.Time
}

// HasProject reports whether a project is selected.
func (q QueryState) HasProject() bool {
	return q.ProjectID != ""
}
