package logquery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/watchfire-io/tasklog/internal/logging"
	"github.com/watchfire-io/tasklog/internal/models"
)

// sourceFunc adapts a function to Source.
type sourceFunc func(ctx context.Context, q models.QueryState) ([]models.LogEntry, error)

func (f sourceFunc) Fetch(ctx context.Context, q models.QueryState) ([]models.LogEntry, error) {
	return f(ctx, q)
}

func entries(names ...string) []models.LogEntry {
	out := make([]models.LogEntry, len(names))
	for i, n := range names {
		out[i] = models.LogEntry{
			UserName:         n,
			UserID:           models.FlexText(fmt.Sprint(100 + i)),
			Task:             "Task " + n,
			TaskLink:         "/t/" + n,
			DatetimeCreating: "2024-01-02 10:00",
		}
	}
	return out
}

func prefilled(names ...string) *RowBuffer {
	b := &RowBuffer{}
	RenderLogs(b, entries(names...))
	return b
}

func TestRenderLogs(t *testing.T) {
	table := &RowBuffer{}
	RenderLogs(table, []models.LogEntry{{
		UserName:         "Ann",
		UserID:           "1",
		Task:             "Fix bug",
		TaskLink:         "/t/1",
		DatetimeCreating: "2024-01-02 10:00",
	}})

	want := Row{Index: 1, UserName: "Ann", UserID: "1", Task: "Fix bug", TaskLink: "/t/1", Created: "2024-01-02 10:00"}
	if table.Len() != 1 || table.Rows()[0] != want {
		t.Errorf("rows = %+v, want [%+v]", table.Rows(), want)
	}
}

func TestRenderLogsReplacesRows(t *testing.T) {
	table := prefilled("a", "b", "c", "d")
	RenderLogs(table, entries("x", "y"))

	rows := table.Rows()
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	for i, r := range rows {
		if r.Index != i+1 {
			t.Errorf("row %d index = %d", i, r.Index)
		}
	}
	if rows[0].UserName != "x" || rows[1].UserName != "y" {
		t.Errorf("rows = %+v", rows)
	}

	RenderLogs(table, nil)
	if table.Len() != 0 {
		t.Errorf("empty render left %d rows", table.Len())
	}
}

func TestWidgetEmptyProjectClearsWithoutRequest(t *testing.T) {
	var calls atomic.Int32
	src := sourceFunc(func(ctx context.Context, q models.QueryState) ([]models.LogEntry, error) {
		calls.Add(1)
		return entries("a"), nil
	})

	table := prefilled("old1", "old2")
	w := NewWidget(models.ModeRange, src, table, logging.NewNop())

	if err := w.Submit(context.Background(), models.QueryState{ProjectID: ""}); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if calls.Load() != 0 {
		t.Errorf("source called %d times, want 0", calls.Load())
	}
	if table.Len() != 0 {
		t.Errorf("table has %d rows, want 0", table.Len())
	}
	if w.State() != StateIdle {
		t.Errorf("state = %v, want idle", w.State())
	}
}

func TestWidgetRangeModeRequiresRange(t *testing.T) {
	var calls atomic.Int32
	src := sourceFunc(func(ctx context.Context, q models.QueryState) ([]models.LogEntry, error) {
		calls.Add(1)
		return entries("a"), nil
	})

	table := prefilled("old")
	w := NewWidget(models.ModeRange, src, table, logging.NewNop())

	err := w.Submit(context.Background(), models.QueryState{ProjectID: "10001"})
	if !errors.Is(err, ErrMissingRange) {
		t.Fatalf("err = %v, want ErrMissingRange", err)
	}
	if calls.Load() != 0 {
		t.Errorf("source called %d times, want 0", calls.Load())
	}
	if table.Len() != 0 {
		t.Errorf("table has %d rows, want 0", table.Len())
	}
	if w.State() != StateIdle {
		t.Errorf("state = %v, want idle", w.State())
	}
}

func TestWidgetRendersResponse(t *testing.T) {
	var got models.QueryState
	src := sourceFunc(func(ctx context.Context, q models.QueryState) ([]models.LogEntry, error) {
		got = q
		return entries("a", "b", "c"), nil
	})

	table := prefilled("old")
	w := NewWidget(models.ModeSingle, src, table, logging.NewNop())

	q := rangeQuery("10001") // mode is overridden by the widget
	if err := w.Submit(context.Background(), q); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if got.Mode != models.ModeSingle {
		t.Errorf("source saw mode %q, want single", got.Mode)
	}
	if table.Len() != 3 {
		t.Fatalf("got %d rows, want 3", table.Len())
	}
	for i, r := range table.Rows() {
		if r.Index != i+1 {
			t.Errorf("row %d index = %d, want %d", i, r.Index, i+1)
		}
	}
}

func TestWidgetFailureClearsTable(t *testing.T) {
	boom := fmt.Errorf("%w: connection refused", ErrRequest)
	src := sourceFunc(func(ctx context.Context, q models.QueryState) ([]models.LogEntry, error) {
		return nil, boom
	})

	table := prefilled("old1", "old2", "old3")
	w := NewWidget(models.ModeRange, src, table, logging.NewNop())

	err := w.Submit(context.Background(), rangeQuery("10001"))
	if !errors.Is(err, ErrRequest) {
		t.Errorf("err = %v, want ErrRequest", err)
	}
	if table.Len() != 0 {
		t.Errorf("table has %d rows after failure, want 0", table.Len())
	}
	if w.State() != StateIdle {
		t.Errorf("state = %v, want idle", w.State())
	}
}

func TestWidgetAgainstServer(t *testing.T) {
	var mu sync.Mutex
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		queries = append(queries, r.URL.RawQuery)
		mu.Unlock()
		if r.URL.Query().Get("project_id") == "broken" {
			fmt.Fprint(w, "not json")
			return
		}
		fmt.Fprint(w, sampleBody)
	}))
	defer srv.Close()

	table := &RowBuffer{}
	w := NewWidget(models.ModeSingle, newTestClient(t, srv.URL, time.Second), table, logging.NewNop())

	date := day(2024, 1, 2)
	if err := w.Submit(context.Background(), models.QueryState{ProjectID: "10001", Date: &date}); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("got %d rows, want 2", table.Len())
	}

	if err := w.Submit(context.Background(), models.QueryState{ProjectID: "10001"}); err != nil {
		t.Fatalf("Submit error: %v", err)
	}

	if err := w.Submit(context.Background(), models.QueryState{ProjectID: "broken"}); !errors.Is(err, ErrDecode) {
		t.Errorf("err = %v, want ErrDecode", err)
	}
	if table.Len() != 0 {
		t.Errorf("table has %d rows after malformed response, want 0", table.Len())
	}

	mu.Lock()
	defer mu.Unlock()
	want := []string{"project_id=10001&date=2024-01-02", "project_id=10001", "project_id=broken"}
	if fmt.Sprint(queries) != fmt.Sprint(want) {
		t.Errorf("queries = %v, want %v", queries, want)
	}
}

func TestWidgetDropsStaleResponse(t *testing.T) {
	releaseFirst := make(chan struct{})
	firstStarted := make(chan struct{})

	src := sourceFunc(func(ctx context.Context, q models.QueryState) ([]models.LogEntry, error) {
		if q.ProjectID == "slow" {
			close(firstStarted)
			<-releaseFirst
			// Ignores cancellation on purpose: the late response must still be dropped.
			return entries("stale1", "stale2", "stale3"), nil
		}
		return entries("fresh"), nil
	})

	table := &RowBuffer{}
	w := NewWidget(models.ModeRange, src, table, logging.NewNop())

	firstErr := make(chan error, 1)
	go func() {
		firstErr <- w.Submit(context.Background(), rangeQuery("slow"))
	}()
	<-firstStarted

	if err := w.Submit(context.Background(), rangeQuery("fast")); err != nil {
		t.Fatalf("second Submit error: %v", err)
	}
	close(releaseFirst)

	if err := <-firstErr; !errors.Is(err, ErrSuperseded) {
		t.Errorf("first Submit err = %v, want ErrSuperseded", err)
	}
	if table.Len() != 1 || table.Rows()[0].UserName != "fresh" {
		t.Errorf("rows = %+v, want the newer response", table.Rows())
	}
	if w.State() != StateIdle {
		t.Errorf("state = %v, want idle", w.State())
	}
}

func TestWidgetCancelsPreviousRequest(t *testing.T) {
	firstStarted := make(chan struct{})
	firstCtxErr := make(chan error, 1)

	src := sourceFunc(func(ctx context.Context, q models.QueryState) ([]models.LogEntry, error) {
		if q.ProjectID == "slow" {
			close(firstStarted)
			<-ctx.Done()
			firstCtxErr <- ctx.Err()
			return nil, fmt.Errorf("%w: %w", ErrRequest, ctx.Err())
		}
		return entries("fresh"), nil
	})

	table := &RowBuffer{}
	w := NewWidget(models.ModeRange, src, table, logging.NewNop())

	firstErr := make(chan error, 1)
	go func() {
		firstErr <- w.Submit(context.Background(), rangeQuery("slow"))
	}()
	<-firstStarted

	if err := w.Submit(context.Background(), models.QueryState{}); err != nil {
		t.Fatalf("empty Submit error: %v", err)
	}

	select {
	case err := <-firstCtxErr:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("first request ctx err = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("first request was not cancelled")
	}
	if err := <-firstErr; !errors.Is(err, ErrSuperseded) {
		t.Errorf("first Submit err = %v, want ErrSuperseded", err)
	}
	if table.Len() != 0 {
		t.Errorf("table has %d rows, want 0", table.Len())
	}
}

func TestSequencer(t *testing.T) {
	var s Sequencer

	ctx1, id1 := s.Next(context.Background())
	ctx2, id2 := s.Next(context.Background())

	if ctx1.Err() == nil {
		t.Error("first ticket context not cancelled by Next")
	}
	if s.IsCurrent(id1) || !s.IsCurrent(id2) {
		t.Errorf("IsCurrent(%d)=%v IsCurrent(%d)=%v", id1, s.IsCurrent(id1), id2, s.IsCurrent(id2))
	}
	if s.Done(id1) {
		t.Error("Done(stale) returned true")
	}
	if !s.Done(id2) {
		t.Error("Done(current) returned false")
	}
	if ctx2.Err() == nil {
		t.Error("Done did not release the current context")
	}

	_, id3 := s.Next(context.Background())
	s.Supersede()
	if s.IsCurrent(id3) {
		t.Error("ticket still current after Supersede")
	}
}

func TestNewWidgetInvalidMode(t *testing.T) {
	w := NewWidget("weekly", nil, &RowBuffer{}, logging.NewNop())
	if w.Mode() != models.ModeRange {
		t.Errorf("Mode() = %q, want range", w.Mode())
	}
}
