package tui

import "github.com/watchfire-io/tasklog/internal/models"

// LogsFetchedMsg carries the result of one /logs request. ID is the
// sequencer ticket the request was issued with.
type LogsFetchedMsg struct {
	ID      uint64
	Entries []models.LogEntry
	Err     error
}

// ProjectsReloadedMsg carries a freshly loaded projects.yaml.
type ProjectsReloadedMsg struct {
	Index *models.ProjectsIndex
}

// SettingsReloadedMsg carries a freshly loaded settings.yaml.
type SettingsReloadedMsg struct {
	Settings *models.Settings
}

// ErrorMsg carries an error to display.
type ErrorMsg struct {
	Err error
}

// ClearErrorMsg clears the error display.
type ClearErrorMsg struct{}

// ClearNoticeMsg clears the transient notice in the status bar.
type ClearNoticeMsg struct{}
