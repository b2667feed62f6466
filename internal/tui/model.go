package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lixenwraith/log"

	"github.com/watchfire-io/tasklog/internal/daterange"
	"github.com/watchfire-io/tasklog/internal/logquery"
	"github.com/watchfire-io/tasklog/internal/models"
)

// Focus targets, cycled with Tab.
const (
	focusProject = iota
	focusDate
	focusTable
	focusCount
)

// Model is the root Bubbletea model for the TUI.
type Model struct {
	settings   *models.Settings
	source     logquery.Source
	ownsSource bool // source was built from settings and follows reloads
	logger     *log.Logger

	mode    models.Mode
	form    *QueryForm
	results *ResultsTable
	spinner spinner.Model

	// Request sequencing; shared across Model copies.
	seq   *logquery.Sequencer
	state logquery.State

	// UI state
	focus         int
	activeOverlay overlay
	presetCursor  int
	width         int
	height        int

	// Status display
	err    error
	notice string

	// now is the picker clock, replaced in tests.
	now func() time.Time
}

// NewModel creates the initial TUI model.
func NewModel(settings *models.Settings, projects *models.ProjectsIndex, source logquery.Source, logger *log.Logger) Model {
	return newModel(settings, projects, source, logger, time.Now)
}

func newModel(settings *models.Settings, projects *models.ProjectsIndex, source logquery.Source, logger *log.Logger, now func() time.Time) Model {
	mode := settings.Picker.Mode
	if !mode.Valid() {
		mode = models.ModeRange
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = badgeLoadingStyle

	m := Model{
		settings: settings,
		source:   source,
		logger:   logger,
		mode:     mode,
		results:  NewResultsTable(),
		spinner:  s,
		seq:      &logquery.Sequencer{},
		now:      now,
	}
	m.form = NewQueryForm(mode, m.newPicker(settings), projects.Projects)
	return m
}

func (m *Model) newPicker(settings *models.Settings) *daterange.Picker {
	opts := daterange.OptionsFromSettings(settings)
	opts.Now = m.now
	return daterange.NewPicker(opts)
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update processes messages and returns an updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	// ── Window resize ──────────────────────────────────────────────
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateDimensions()
		return m, nil

	// ── Key events ─────────────────────────────────────────────────
	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd

	// ── Query results ──────────────────────────────────────────────
	case LogsFetchedMsg:
		return m, m.handleLogsFetched(msg)

	case spinner.TickMsg:
		if m.state != logquery.StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	// ── Live reload ────────────────────────────────────────────────
	case ProjectsReloadedMsg:
		m.form.SetProjects(msg.Index.Projects)
		m.notice = "Projects reloaded"
		return m, clearNoticeAfter(3 * time.Second)

	case SettingsReloadedMsg:
		if err := m.applySettings(msg.Settings); err != nil {
			m.err = err
			return m, clearErrorAfter(5 * time.Second)
		}
		m.notice = "Settings reloaded"
		return m, clearNoticeAfter(3 * time.Second)

	// ── Error handling ─────────────────────────────────────────────
	case ErrorMsg:
		m.err = msg.Err
		cmds = append(cmds, clearErrorAfter(5*time.Second))
		return m, tea.Batch(cmds...)

	case ClearErrorMsg:
		m.err = nil
		return m, nil

	case ClearNoticeMsg:
		m.notice = ""
		return m, nil
	}

	return m, nil
}

// handleLogsFetched applies a response if its ticket is still current.
func (m *Model) handleLogsFetched(msg LogsFetchedMsg) tea.Cmd {
	if !m.seq.Done(msg.ID) {
		m.logger.Debug("msg", "Dropping stale logs response", "component", "tui", "ticket", msg.ID)
		return nil
	}
	m.state = logquery.StateIdle

	if msg.Err != nil {
		m.results.Clear()
		if errors.Is(msg.Err, context.Canceled) {
			return nil
		}
		m.logger.Warn("msg", "Logs query failed, table cleared", "component", "tui", "error", msg.Err)
		m.err = msg.Err
		return clearErrorAfter(5 * time.Second)
	}

	logquery.RenderLogs(m.results, msg.Entries)
	return nil
}

// submit reads the form and starts a request, superseding any in flight.
// Without a project the table is cleared before the date field is read.
func (m *Model) submit() tea.Cmd {
	if m.form.ProjectID() == "" {
		m.err = nil
		m.seq.Supersede()
		m.results.Clear()
		m.state = logquery.StateIdle
		return nil
	}

	q, err := m.form.Query()
	if err != nil {
		m.err = err
		return clearErrorAfter(5 * time.Second)
	}
	m.err = nil

	ctx, id := m.seq.Next(context.Background())
	m.state = logquery.StateLoading
	m.logger.Debug("msg", "Submitting logs query", "component", "tui", "project_id", q.ProjectID, "ticket", id)
	return tea.Batch(fetchLogsCmd(ctx, m.source, q, id), m.spinner.Tick)
}

// applySettings rebuilds the picker, and the client when it was built from
// settings.
func (m *Model) applySettings(settings *models.Settings) error {
	if m.ownsSource {
		client, err := logquery.NewClient(logquery.ClientOptionsFromSettings(settings), m.logger)
		if err != nil {
			return err
		}
		m.source = client
	}

	mode := settings.Picker.Mode
	if !mode.Valid() {
		mode = models.ModeRange
	}
	m.settings = settings
	m.mode = mode
	m.form.SetPicker(mode, m.newPicker(settings))
	return nil
}

// handleKey processes key events.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Overlay captures everything except quit
	if m.activeOverlay != overlayNone {
		if key.Matches(msg, globalKeys.Quit) {
			return m.doQuit()
		}
		return m.handleOverlayKey(msg)
	}

	// Global shortcuts (always work)
	switch {
	case key.Matches(msg, globalKeys.Quit):
		return m.doQuit()

	case key.Matches(msg, globalKeys.Help):
		m.activeOverlay = overlayHelp
		return nil

	case key.Matches(msg, globalKeys.Tab):
		return m.setFocus((m.focus + 1) % focusCount)

	case key.Matches(msg, globalKeys.Submit):
		return m.submit()
	}

	// Route to focused field
	switch m.focus {
	case focusDate:
		return m.form.UpdateInput(msg)
	case focusProject:
		return m.handleProjectKey(msg)
	case focusTable:
		if cmd, ok := m.handleRangeKey(msg); ok {
			return cmd
		}
		return m.results.Update(msg)
	}
	return nil
}

func (m *Model) handleProjectKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, formKeys.PrevProject):
		m.form.PrevProject()
		return nil
	case key.Matches(msg, formKeys.NextProject):
		m.form.NextProject()
		return nil
	}
	cmd, _ := m.handleRangeKey(msg)
	return cmd
}

// handleRangeKey handles the preset and reset shortcuts.
func (m *Model) handleRangeKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, formKeys.Presets):
		if m.mode == models.ModeRange {
			m.activeOverlay = overlayPresets
			m.presetCursor = 0
		}
		return nil, true
	case key.Matches(msg, formKeys.Reset):
		m.form.ResetRange()
		return nil, true
	}
	return nil, false
}

func (m *Model) handleOverlayKey(msg tea.KeyMsg) tea.Cmd {
	if m.activeOverlay == overlayHelp {
		if key.Matches(msg, overlayKeys.Cancel) || key.Matches(msg, globalKeys.Help) {
			m.activeOverlay = overlayNone
		}
		return nil
	}

	presets := m.form.picker.Presets()
	switch {
	case key.Matches(msg, overlayKeys.Up):
		if m.presetCursor > 0 {
			m.presetCursor--
		}
	case key.Matches(msg, overlayKeys.Down):
		if m.presetCursor < len(presets)-1 {
			m.presetCursor++
		}
	case key.Matches(msg, overlayKeys.Apply):
		m.activeOverlay = overlayNone
		if m.presetCursor < len(presets) {
			if err := m.form.ApplyPreset(presets[m.presetCursor].Key); err != nil {
				m.err = err
				return clearErrorAfter(5 * time.Second)
			}
		}
	case key.Matches(msg, overlayKeys.Cancel):
		m.activeOverlay = overlayNone
	}
	return nil
}

func (m *Model) setFocus(focus int) tea.Cmd {
	m.focus = focus
	m.form.BlurInput()
	m.results.Blur()

	switch focus {
	case focusDate:
		return m.form.FocusInput()
	case focusTable:
		m.results.Focus()
	}
	return nil
}

// doQuit cancels any in-flight request and exits.
func (m *Model) doQuit() tea.Cmd {
	m.seq.Supersede()
	return tea.Quit
}

func (m *Model) updateDimensions() {
	m.form.SetWidth(m.width - 4)
	// header, form box, results border, link line, status bar
	tableHeight := m.height - 1 - 4 - 2 - 1 - 1
	m.results.SetSize(m.width-2, tableHeight)
}

// View renders the full UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := renderHeader(m.mode, m.state, m.spinner.View(), m.serverLabel(), m.width)

	formStyle := unfocusedBorderStyle
	if m.focus != focusTable {
		formStyle = focusedBorderStyle
	}
	form := formStyle.Width(m.width - 2).Render(m.form.View(m.focus))

	tableStyle := unfocusedBorderStyle
	if m.focus == focusTable {
		tableStyle = focusedBorderStyle
	}
	results := tableStyle.Width(m.width - 2).Render(m.results.View())

	link := ""
	if row, ok := m.results.Selected(); ok && row.TaskLink != "" {
		link = hintStyle.Render(" → " + cell(row.TaskLink))
	}

	status := renderStatusBar(&m, m.width)

	base := lipgloss.JoinVertical(lipgloss.Left, header, form, results, link, status)

	if m.activeOverlay != overlayNone {
		return placeOverlay(base, m.overlayBox(), m.width, m.height)
	}
	return base
}

func (m Model) serverLabel() string {
	if m.settings == nil {
		return ""
	}
	return m.settings.Server.BaseURL
}
