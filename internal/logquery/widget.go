package logquery

import (
	"context"
	"errors"
	"sync"

	"github.com/lixenwraith/log"

	"github.com/watchfire-io/tasklog/internal/models"
)

// State of the widget.
type State int

const (
	// StateIdle means the table is empty or shows the last successful result.
	StateIdle State = iota
	// StateLoading means a request is in flight.
	StateLoading
)

func (s State) String() string {
	if s == StateLoading {
		return "loading"
	}
	return "idle"
}

// Widget ties a Source to a Table for one input mode.
type Widget struct {
	mode   models.Mode
	source Source
	logger *log.Logger
	seq    Sequencer

	mu    sync.Mutex // guards table and state
	table Table
	state State
}

// NewWidget creates a widget. An invalid mode falls back to ModeRange.
func NewWidget(mode models.Mode, source Source, table Table, logger *log.Logger) *Widget {
	if !mode.Valid() {
		mode = models.ModeRange
	}
	return &Widget{
		mode:   mode,
		source: source,
		table:  table,
		logger: logger,
	}
}

// Mode returns the widget's input mode.
func (w *Widget) Mode() models.Mode {
	return w.mode
}

// State returns the current state.
func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Submit runs one query-and-render cycle and blocks until it completes.
//
// An empty project clears the table without a request. On success the
// table is replaced with the response rows; on any failure it is cleared
// and the error is returned. If a newer Submit started meanwhile, the result
// is dropped and ErrSuperseded is returned.
func (w *Widget) Submit(ctx context.Context, q models.QueryState) error {
	q.Mode = w.mode

	if !q.HasProject() {
		w.clear()
		w.logger.Debug("msg", "No project selected, table cleared", "component", "widget")
		return nil
	}
	if w.mode == models.ModeRange && q.Range == nil {
		w.clear()
		return ErrMissingRange
	}

	reqCtx, id := w.seq.Next(ctx)
	w.mu.Lock()
	w.state = StateLoading
	w.mu.Unlock()

	entries, err := w.source.Fetch(reqCtx, q)

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.seq.Done(id) {
		w.logger.Debug("msg", "Dropping stale logs response",
			"component", "widget",
			"project_id", q.ProjectID)
		return ErrSuperseded
	}
	w.state = StateIdle

	if err != nil {
		w.table.Clear()
		if !errors.Is(err, context.Canceled) {
			w.logger.Warn("msg", "Logs query failed, table cleared",
				"component", "widget",
				"project_id", q.ProjectID,
				"error", err)
		}
		return err
	}

	RenderLogs(w.table, entries)
	w.logger.Debug("msg", "Rendered logs",
		"component", "widget",
		"project_id", q.ProjectID,
		"rows", len(entries))
	return nil
}

// clear supersedes any in-flight request and empties the table.
func (w *Widget) clear() {
	w.seq.Supersede()
	w.mu.Lock()
	defer w.mu.Unlock()
	w.table.Clear()
	w.state = StateIdle
}
