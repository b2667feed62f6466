package daterange

import (
	"fmt"
	"strings"
	"time"

	"github.com/watchfire-io/tasklog/internal/models"
)

// Options configure a Picker.
type Options struct {
	DisplayFormat string // moment-style tokens
	Separator     string
	DefaultDays   int
	Labels        models.Labels
	Location      *time.Location
	Now           func() time.Time
}

// OptionsFromSettings builds picker options from settings, using the local
// clock.
func OptionsFromSettings(s *models.Settings) Options {
	return Options{
		DisplayFormat: s.Picker.DisplayFormat,
		Separator:     s.Picker.Separator,
		DefaultDays:   s.Picker.DefaultDays,
		Labels:        s.Labels,
		Location:      time.Local,
		Now:           time.Now,
	}
}

// Picker holds the current range selection. The selection is always set:
// it starts at the default range and every mutation is validated against
// the max date.
type Picker struct {
	opts      Options
	layout    string
	presets   []Preset
	selection models.DateRange
	presetKey string // key of the preset that produced the selection, "" if custom
}

// NewPicker creates a picker positioned on the default range.
func NewPicker(opts Options) *Picker {
	if opts.DisplayFormat == "" {
		opts.DisplayFormat = "DD.MM.YYYY"
	}
	if opts.Separator == "" {
		opts.Separator = " - "
	}
	if opts.DefaultDays <= 0 {
		opts.DefaultDays = 30
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	p := &Picker{
		opts:    opts,
		layout:  Layout(opts.DisplayFormat),
		presets: DefaultPresets(opts.Labels),
	}
	p.Reset()
	return p
}

// Today returns the current calendar day in the picker's location.
func (p *Picker) Today() time.Time {
	return Day(p.opts.Now().In(p.opts.Location))
}

// MaxDate is the last selectable day (today).
func (p *Picker) MaxDate() time.Time {
	return p.Today()
}

// DefaultRange is the last DefaultDays days ending today.
func (p *Picker) DefaultRange() models.DateRange {
	today := p.Today()
	return models.DateRange{
		Start: today.AddDate(0, 0, -(p.opts.DefaultDays - 1)),
		End:   today,
	}
}

// Labels returns the configured labels.
func (p *Picker) Labels() models.Labels {
	return p.opts.Labels
}

// Separator returns the range separator used in display text.
func (p *Picker) Separator() string {
	return p.opts.Separator
}

// Presets returns the available presets in display order.
func (p *Picker) Presets() []Preset {
	return p.presets
}

// Selection returns the current range.
func (p *Picker) Selection() models.DateRange {
	return p.selection
}

// Reset returns the selection to the default range.
func (p *Picker) Reset() {
	p.selection = p.DefaultRange()
	p.presetKey = p.matchPreset(p.selection)
}

// ApplyPreset selects a preset by key or label.
func (p *Picker) ApplyPreset(name string) error {
	for _, preset := range p.presets {
		if preset.Key == name || preset.Label == name {
			p.selection = preset.Resolve(p.Today(), p.MaxDate())
			p.presetKey = preset.Key
			return nil
		}
	}
	return fmt.Errorf("%w %q", ErrUnknownPreset, name)
}

// SetRange selects a custom range after validating it.
func (p *Picker) SetRange(start, end time.Time) error {
	r := models.DateRange{Start: Day(start.In(p.opts.Location)), End: Day(end.In(p.opts.Location))}
	if err := p.validate(r); err != nil {
		return err
	}
	p.selection = r
	p.presetKey = p.matchPreset(r)
	return nil
}

// SetDisplay parses text in display form and selects it.
func (p *Picker) SetDisplay(text string) error {
	r, err := p.ParseDisplay(text)
	if err != nil {
		return err
	}
	return p.SetRange(r.Start, r.End)
}

// ActiveLabel returns the label of the preset matching the selection, or
// the custom range label.
func (p *Picker) ActiveLabel() string {
	for _, preset := range p.presets {
		if preset.Key == p.presetKey {
			return preset.Label
		}
	}
	return p.opts.Labels.CustomRange
}

// Display renders the selection, e.g. "19.09.2026 - 18.10.2026".
func (p *Picker) Display() string {
	return p.FormatDisplayDate(p.selection.Start) + p.opts.Separator + p.FormatDisplayDate(p.selection.End)
}

// FormatDisplayDate formats one date in the display format.
func (p *Picker) FormatDisplayDate(t time.Time) string {
	return t.Format(p.layout)
}

// ParseDate parses one date in display format, falling back to YYYY-MM-DD.
func (p *Picker) ParseDate(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, ErrNoDateSelected
	}
	if t, err := time.ParseInLocation(p.layout, text, p.opts.Location); err == nil {
		return t, nil
	}
	if t, err := ParseISO(text, p.opts.Location); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w %q: expected %s or YYYY-MM-DD", ErrInvalidDate, text, p.opts.DisplayFormat)
}

// ParseDisplay parses "start<sep>end". A single date selects that one day.
func (p *Picker) ParseDisplay(text string) (models.DateRange, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.DateRange{}, ErrNoDateSelected
	}

	startText, endText, found := strings.Cut(text, p.opts.Separator)
	if !found {
		d, err := p.ParseDate(text)
		if err != nil {
			return models.DateRange{}, err
		}
		return models.DateRange{Start: d, End: d}, nil
	}

	start, err := p.ParseDate(startText)
	if err != nil {
		return models.DateRange{}, err
	}
	end, err := p.ParseDate(endText)
	if err != nil {
		return models.DateRange{}, err
	}
	return models.DateRange{Start: start, End: end}, nil
}

// ValidateDate checks a single date against the max date.
func (p *Picker) ValidateDate(t time.Time) error {
	if Day(t).After(p.MaxDate()) {
		return fmt.Errorf("%w: %s", ErrAfterMaxDate, p.FormatDisplayDate(t))
	}
	return nil
}

func (p *Picker) validate(r models.DateRange) error {
	if r.Start.After(r.End) {
		return fmt.Errorf("%w: %s%s%s", ErrInvertedRange,
			p.FormatDisplayDate(r.Start), p.opts.Separator, p.FormatDisplayDate(r.End))
	}
	return p.ValidateDate(r.End)
}

func (p *Picker) matchPreset(r models.DateRange) string {
	today, maxDate := p.Today(), p.MaxDate()
	for _, preset := range p.presets {
		if Equal(preset.Resolve(today, maxDate), r) {
			return preset.Key
		}
	}
	return ""
}
