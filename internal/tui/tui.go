// Package tui implements the interactive log query widget.
package tui

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lixenwraith/log"

	"github.com/watchfire-io/tasklog/internal/config"
	"github.com/watchfire-io/tasklog/internal/logquery"
	"github.com/watchfire-io/tasklog/internal/models"
	"github.com/watchfire-io/tasklog/internal/watcher"
)

// programRef is a shared reference to the tea.Program for goroutine sends.
// It's set after tea.NewProgram but before p.Run().
type programRef struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *programRef) Set(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

func (r *programRef) Send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// Clear nils out the program reference, preventing post-exit sends.
func (r *programRef) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = nil
}

// Options configure Run.
type Options struct {
	Settings *models.Settings
	Projects *models.ProjectsIndex
	Logger   *log.Logger

	// Source overrides the HTTP client built from Settings.
	Source logquery.Source
	// ProjectID preselects a project.
	ProjectID string
	// Watch enables live reload of settings.yaml and projects.yaml.
	Watch bool
}

// Run launches the TUI and blocks until the user quits.
func Run(opts Options) error {
	if opts.Settings == nil {
		opts.Settings = models.NewSettings()
	}
	if opts.Projects == nil {
		opts.Projects = models.NewProjectsIndex()
	}

	source := opts.Source
	if source == nil {
		client, err := logquery.NewClient(logquery.ClientOptionsFromSettings(opts.Settings), opts.Logger)
		if err != nil {
			return err
		}
		source = client
	}

	ref := &programRef{}
	defer ref.Clear()

	model := NewModel(opts.Settings, opts.Projects, source, opts.Logger)
	model.ownsSource = opts.Source == nil
	if opts.ProjectID != "" {
		model.form.SelectProject(opts.ProjectID)
	}

	if opts.Watch {
		w, err := watcher.New(opts.Logger)
		if err != nil {
			return fmt.Errorf("failed to create config watcher: %w", err)
		}
		if err := w.Start(); err != nil {
			w.Stop()
			return fmt.Errorf("failed to watch config directory: %w", err)
		}
		defer w.Stop()

		stop := make(chan struct{})
		defer close(stop)
		go forwardWatchEvents(w, ref, stop)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())

	// Store program reference for goroutine sends
	ref.Set(p)

	_, err := p.Run()
	return err
}

// forwardWatchEvents reloads changed files and sends the result to the
// program until stop is closed.
func forwardWatchEvents(w *watcher.Watcher, ref *programRef, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case ev := <-w.Events():
			switch ev.Type {
			case watcher.EventProjectsChanged:
				ref.Send(reloadProjectsCmd()())
			case watcher.EventSettingsChanged:
				ref.Send(reloadSettingsCmd()())
			}
		}
	}
}

// loadProjectsFromDisk is the default loader used by reload commands.
var loadProjectsFromDisk = config.LoadProjectsIndex

// loadSettingsFromDisk is the default loader used by reload commands.
var loadSettingsFromDisk = config.LoadSettings
