package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/watchfire-io/tasklog/internal/daterange"
	"github.com/watchfire-io/tasklog/internal/models"
)

// noProjectLabel is shown for the leading "no selection" entry.
const noProjectLabel = "(no project)"

// QueryForm holds the project selector and the date field.
type QueryForm struct {
	projects []models.ProjectEntry
	selected int // 0 is "no selection", i maps to projects[i-1]

	mode   models.Mode
	picker *daterange.Picker
	input  textinput.Model
	width  int
}

// NewQueryForm creates a form for the given mode.
func NewQueryForm(mode models.Mode, picker *daterange.Picker, projects []models.ProjectEntry) *QueryForm {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Prompt = ""

	f := &QueryForm{
		mode:   mode,
		picker: picker,
		input:  ti,
	}
	f.SetProjects(projects)
	f.syncInput()
	return f
}

// SetProjects replaces the selector entries, keeping the current project
// selected if it still exists.
func (f *QueryForm) SetProjects(projects []models.ProjectEntry) {
	current := f.ProjectID()
	f.projects = append([]models.ProjectEntry(nil), projects...)
	f.selected = 0
	f.SelectProject(current)
}

// SelectProject selects a project by ID. Unknown IDs select nothing.
func (f *QueryForm) SelectProject(id string) {
	if id == "" {
		f.selected = 0
		return
	}
	for i, p := range f.projects {
		if p.ProjectID == id {
			f.selected = i + 1
			return
		}
	}
	f.selected = 0
}

// ProjectID returns the selected project, "" for no selection.
func (f *QueryForm) ProjectID() string {
	if f.selected == 0 || f.selected > len(f.projects) {
		return ""
	}
	return f.projects[f.selected-1].ProjectID
}

// NextProject moves the selector forward, wrapping around.
func (f *QueryForm) NextProject() {
	f.selected = (f.selected + 1) % (len(f.projects) + 1)
}

// PrevProject moves the selector back, wrapping around.
func (f *QueryForm) PrevProject() {
	n := len(f.projects) + 1
	f.selected = (f.selected - 1 + n) % n
}

// SetPicker swaps the picker and mode after a settings reload.
func (f *QueryForm) SetPicker(mode models.Mode, picker *daterange.Picker) {
	f.mode = mode
	f.picker = picker
	f.input.SetValue("")
	f.syncInput()
}

// ApplyPreset selects a preset and refreshes the field.
func (f *QueryForm) ApplyPreset(key string) error {
	if err := f.picker.ApplyPreset(key); err != nil {
		return err
	}
	f.syncInput()
	return nil
}

// ResetRange returns to the default range, or clears the single date.
func (f *QueryForm) ResetRange() {
	f.picker.Reset()
	if f.mode == models.ModeSingle {
		f.input.SetValue("")
		return
	}
	f.syncInput()
}

// Query reads the inputs into a QueryState. In range mode the typed text
// is validated and committed to the picker first.
func (f *QueryForm) Query() (models.QueryState, error) {
	q := models.QueryState{ProjectID: f.ProjectID(), Mode: f.mode}

	text := strings.TrimSpace(f.input.Value())
	if f.mode == models.ModeSingle {
		if text == "" {
			return q, nil
		}
		d, err := f.picker.ParseDate(text)
		if err != nil {
			return q, err
		}
		q.Date = &d
		return q, nil
	}

	if text != f.picker.Display() {
		if err := f.picker.SetDisplay(text); err != nil {
			return q, err
		}
		f.syncInput()
	}
	r := f.picker.Selection()
	q.Range = &r
	return q, nil
}

func (f *QueryForm) syncInput() {
	if f.mode == models.ModeSingle {
		f.input.Placeholder = f.picker.FormatDisplayDate(f.picker.Today())
		return
	}
	f.input.Placeholder = ""
	f.input.SetValue(f.picker.Display())
	f.input.CursorEnd()
}

// FocusInput gives the date field keyboard focus.
func (f *QueryForm) FocusInput() tea.Cmd {
	return f.input.Focus()
}

// BlurInput removes keyboard focus from the date field.
func (f *QueryForm) BlurInput() {
	f.input.Blur()
}

// UpdateInput forwards a key to the date field.
func (f *QueryForm) UpdateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

// SetWidth updates the form width.
func (f *QueryForm) SetWidth(width int) {
	f.width = width
	f.input.Width = width - 16
}

// View renders the two fields.
func (f *QueryForm) View(focus int) string {
	label := noProjectLabel
	if id := f.ProjectID(); id != "" {
		label = f.projects[f.selected-1].Label() + " " + hintStyle.Render("("+id+")")
	}
	project := "‹ " + label + " ›"
	if focus == focusProject {
		project = fieldFocusedStyle.Render("‹ ") + fieldValueStyle.Render(label) + fieldFocusedStyle.Render(" ›")
	}

	dateLabel := "Range"
	dateExtra := presetLabelStyle.Render(f.picker.ActiveLabel())
	if f.mode == models.ModeSingle {
		dateLabel = "Date"
		dateExtra = ""
	}
	date := f.input.View()
	if dateExtra != "" {
		date += "  " + dateExtra
	}

	lines := []string{
		fieldLabelStyle.Render("Project") + project,
		fieldLabelStyle.Render(dateLabel) + date,
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
