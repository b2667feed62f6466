// Package daterange implements the date selection control of the log query
// widget: a range with a default, a max date, named presets and a display
// format.
package daterange

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/watchfire-io/tasklog/internal/models"
)

var (
	ErrInvalidDate    = errors.New("invalid date")
	ErrAfterMaxDate   = errors.New("date is after the max date")
	ErrInvertedRange  = errors.New("start date is after end date")
	ErrUnknownPreset  = errors.New("unknown preset")
	ErrNoDateSelected = errors.New("no date selected")
)

var tokenReplacer = strings.NewReplacer(
	"YYYY", "2006",
	"YY", "06",
	"MM", "01",
	"DD", "02",
	"M", "1",
	"D", "2",
)

// Layout converts a moment-style display format ("DD.MM.YYYY") into a Go
// time layout ("02.01.2006").
func Layout(format string) string {
	return tokenReplacer.Replace(format)
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FormatISO formats a date for the wire (YYYY-MM-DD).
func FormatISO(t time.Time) string {
	return t.Format(models.DateLayout)
}

// ParseISO parses a YYYY-MM-DD date in loc.
func ParseISO(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(models.DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidDate, s)
	}
	return t, nil
}

// Equal compares two ranges by calendar date.
func Equal(a, b models.DateRange) bool {
	return Day(a.Start).Equal(Day(b.Start)) && Day(a.End).Equal(Day(b.End))
}
