package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/watchfire-io/tasklog/internal/logquery"
	"github.com/watchfire-io/tasklog/internal/models"
)

// fetchLogsCmd runs one request. The update loop decides whether the
// result is still current.
func fetchLogsCmd(ctx context.Context, source logquery.Source, q models.QueryState, id uint64) tea.Cmd {
	return func() tea.Msg {
		entries, err := source.Fetch(ctx, q)
		return LogsFetchedMsg{ID: id, Entries: entries, Err: err}
	}
}

func reloadProjectsCmd() tea.Cmd {
	return func() tea.Msg {
		idx, err := loadProjectsFromDisk()
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to reload projects: %w", err)}
		}
		return ProjectsReloadedMsg{Index: idx}
	}
}

func reloadSettingsCmd() tea.Cmd {
	return func() tea.Msg {
		settings, err := loadSettingsFromDisk()
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to reload settings: %w", err)}
		}
		return SettingsReloadedMsg{Settings: settings}
	}
}

func clearErrorAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}

func clearNoticeAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ClearNoticeMsg{}
	})
}
