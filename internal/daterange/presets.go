package daterange

import (
	"time"

	"github.com/watchfire-io/tasklog/internal/models"
)

// Preset keys, stable across label changes.
const (
	PresetToday      = "today"
	PresetYesterday  = "yesterday"
	PresetLast7Days  = "last_7_days"
	PresetLast30Days = "last_30_days"
	PresetThisMonth  = "this_month"
)

// Preset is a named shortcut resolving to a fixed range relative to today.
type Preset struct {
	Key     string
	Label   string
	resolve func(today time.Time) models.DateRange
}

// Resolve returns the preset range for the given day, clamped to maxDate.
// A zero maxDate disables clamping.
func (p Preset) Resolve(today, maxDate time.Time) models.DateRange {
	r := p.resolve(Day(today))
	if !maxDate.IsZero() && r.End.After(maxDate) {
		r.End = Day(maxDate)
	}
	return r
}

// DefaultPresets returns the presets in display order with the given labels.
func DefaultPresets(labels models.Labels) []Preset {
	return []Preset{
		{
			Key:   PresetToday,
			Label: labels.Today,
			resolve: func(today time.Time) models.DateRange {
				return models.DateRange{Start: today, End: today}
			},
		},
		{
			Key:   PresetYesterday,
			Label: labels.Yesterday,
			resolve: func(today time.Time) models.DateRange {
				y := today.AddDate(0, 0, -1)
				return models.DateRange{Start: y, End: y}
			},
		},
		{
			Key:   PresetLast7Days,
			Label: labels.Last7Days,
			resolve: func(today time.Time) models.DateRange {
				return models.DateRange{Start: today.AddDate(0, 0, -6), End: today}
			},
		},
		{
			Key:   PresetLast30Days,
			Label: labels.Last30Days,
			resolve: func(today time.Time) models.DateRange {
				return models.DateRange{Start: today.AddDate(0, 0, -29), End: today}
			},
		},
		{
			Key:   PresetThisMonth,
			Label: labels.ThisMonth,
			resolve: func(today time.Time) models.DateRange {
				first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
				return models.DateRange{Start: first, End: first.AddDate(0, 1, -1)}
			},
		},
	}
}
