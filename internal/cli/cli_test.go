package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/watchfire-io/tasklog/internal/buildinfo"
	"github.com/watchfire-io/tasklog/internal/config"
	"github.com/watchfire-io/tasklog/internal/logquery"
	"github.com/watchfire-io/tasklog/internal/models"
	"github.com/watchfire-io/tasklog/internal/render"
)

// setupHome points the config directory at a temp dir with logging off.
func setupHome(t *testing.T) {
	t.Helper()
	t.Setenv(config.HomeEnv, t.TempDir())

	settings := models.NewSettings()
	settings.Logging.Output = "none"
	if err := config.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	queryFlags = queryOptions{}
	serverFlag = ""
	settingsYAML = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// logServer records raw query strings and answers with status and body.
type logServer struct {
	*httptest.Server
	mu      sync.Mutex
	queries []string
}

func newLogServer(t *testing.T, status int, body string) *logServer {
	t.Helper()
	s := &logServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.queries = append(s.queries, r.URL.RawQuery)
		s.mu.Unlock()
		if r.URL.Path != logquery.LogsPath {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *logServer) requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

const twoLogs = `[
  {"user_name": "Ann", "user_id": 7, "task": "Fix login", "task_link": "https://tracker.example/t/1", "datetime_creating": "2024-01-05 10:00"},
  {"user_name": "Bob", "user_id": "b-2", "task": "Review", "task_link": "https://tracker.example/t/2", "datetime_creating": "2024-01-04 09:30"}
]`

func decodeRows(t *testing.T, out string) []map[string]any {
	t.Helper()
	var rows []map[string]any
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("output is not a JSON array: %v\n%s", err, out)
	}
	return rows
}

func TestQueryRangeJSON(t *testing.T) {
	setupHome(t)
	srv := newLogServer(t, http.StatusOK, twoLogs)

	out, err := execute(t, "query", "--server", srv.URL, "--project", "10001",
		"--from", "01.01.2024", "--to", "2024-01-31", "--format", "json")
	if err != nil {
		t.Fatalf("query error: %v", err)
	}

	reqs := srv.requests()
	if len(reqs) != 1 || reqs[0] != "project_id=10001&startDate=2024-01-01&endDate=2024-01-31" {
		t.Errorf("requests = %v", reqs)
	}

	rows := decodeRows(t, out)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0]["user_id"] != "7" || rows[1]["user_name"] != "Bob" || rows[1]["index"] != float64(2) {
		t.Errorf("rows = %v", rows)
	}
}

func TestQueryDateImpliesSingleMode(t *testing.T) {
	setupHome(t)
	srv := newLogServer(t, http.StatusOK, "[]")

	if _, err := execute(t, "query", "--server", srv.URL, "-p", "10001", "--date", "03.10.2024", "-f", "json"); err != nil {
		t.Fatalf("query error: %v", err)
	}
	if reqs := srv.requests(); len(reqs) != 1 || reqs[0] != "project_id=10001&date=2024-10-03" {
		t.Errorf("requests = %v", reqs)
	}
}

func TestQuerySingleModeWithoutDate(t *testing.T) {
	setupHome(t)
	srv := newLogServer(t, http.StatusOK, "[]")

	if _, err := execute(t, "query", "--server", srv.URL, "-p", "10001", "--mode", "single", "-f", "json"); err != nil {
		t.Fatalf("query error: %v", err)
	}
	if reqs := srv.requests(); len(reqs) != 1 || reqs[0] != "project_id=10001" {
		t.Errorf("requests = %v", reqs)
	}
}

func TestQueryWithoutProjectSendsNothing(t *testing.T) {
	setupHome(t)
	srv := newLogServer(t, http.StatusOK, twoLogs)

	out, err := execute(t, "query", "--server", srv.URL, "-f", "json")
	if err != nil {
		t.Fatalf("query error: %v", err)
	}
	if reqs := srv.requests(); len(reqs) != 0 {
		t.Errorf("requests = %v, want none", reqs)
	}
	if rows := decodeRows(t, out); len(rows) != 0 {
		t.Errorf("rows = %v, want empty", rows)
	}
}

func TestQueryWithoutProjectIgnoresDateFlags(t *testing.T) {
	setupHome(t)
	srv := newLogServer(t, http.StatusOK, twoLogs)

	out, err := execute(t, "query", "--server", srv.URL, "-f", "json", "--from", "garbage")
	if err != nil {
		t.Fatalf("query error: %v", err)
	}
	if reqs := srv.requests(); len(reqs) != 0 {
		t.Errorf("requests = %v, want none", reqs)
	}
	if rows := decodeRows(t, out); len(rows) != 0 {
		t.Errorf("rows = %v, want empty", rows)
	}
}

func TestQueryServerErrorPrintsEmptyTable(t *testing.T) {
	setupHome(t)
	srv := newLogServer(t, http.StatusInternalServerError, `{"detail": "boom"}`)

	out, err := execute(t, "query", "--server", srv.URL, "-p", "10001", "-f", "json")
	if !errors.Is(err, logquery.ErrStatus) {
		t.Fatalf("err = %v, want ErrStatus", err)
	}
	if rows := decodeRows(t, out); len(rows) != 0 {
		t.Errorf("rows = %v, want empty", rows)
	}
}

func TestQueryHTMLEscapes(t *testing.T) {
	setupHome(t)
	srv := newLogServer(t, http.StatusOK,
		`[{"user_name": "<b>x</b>", "user_id": 1, "task": "t", "task_link": "javascript:alert(1)", "datetime_creating": "d"}]`)

	out, err := execute(t, "query", "--server", srv.URL, "-p", "10001", "-f", "html")
	if err != nil {
		t.Fatalf("query error: %v", err)
	}
	if strings.Contains(out, "<b>x</b>") || strings.Contains(out, "javascript:") {
		t.Errorf("html output not escaped:\n%s", out)
	}
	if !strings.Contains(out, "&lt;b&gt;x&lt;/b&gt;") {
		t.Errorf("escaped name missing:\n%s", out)
	}
}

func TestQueryURLFlag(t *testing.T) {
	setupHome(t)

	out, err := execute(t, "query", "--server", "http://logs.example:8000/", "-p", "a b",
		"--preset", "today", "--url")
	if err != nil {
		t.Fatalf("query error: %v", err)
	}
	if !strings.HasPrefix(out, "http://logs.example:8000/logs?project_id=a+b&startDate=") {
		t.Errorf("url = %q", out)
	}
}

func TestQueryFlagConflicts(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"preset and from", []string{"--preset", "today", "--from", "2024-01-01"}},
		{"date in range mode", []string{"--mode", "range", "--date", "2024-01-01"}},
		{"preset in single mode", []string{"--mode", "single", "--preset", "today"}},
		{"unknown preset", []string{"--preset", "fortnight"}},
		{"inverted range", []string{"--from", "2024-02-01", "--to", "2024-01-01"}},
		{"bad date", []string{"--from", "31/01/2024"}},
		{"bad mode", []string{"--mode", "weekly"}},
		{"bad format", []string{"--format", "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupHome(t)
			args := append([]string{"query", "-p", "10001", "--server", "http://127.0.0.1:1"}, tt.args...)
			if _, err := execute(t, args...); err == nil {
				t.Errorf("expected error for %v", tt.args)
			}
		})
	}
}

func TestDefaultFormatForPipes(t *testing.T) {
	if got := defaultFormat(&bytes.Buffer{}); got != render.FormatJSON {
		t.Errorf("defaultFormat(buffer) = %q, want json", got)
	}
}

func TestProjectsAddListRemove(t *testing.T) {
	setupHome(t)

	if _, err := execute(t, "projects", "add", "10001", "Backend", "API"); err != nil {
		t.Fatalf("add error: %v", err)
	}
	if _, err := execute(t, "projects", "add", "10002", "Frontend"); err != nil {
		t.Fatalf("add error: %v", err)
	}

	out, err := execute(t, "projects", "list")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if !strings.Contains(out, "10001") || !strings.Contains(out, "Backend API") || !strings.Contains(out, "Frontend") {
		t.Errorf("list output:\n%s", out)
	}

	if _, err := execute(t, "projects", "rm", "10001"); err != nil {
		t.Fatalf("rm error: %v", err)
	}
	if _, err := execute(t, "projects", "rm", "10001"); err == nil {
		t.Error("removing a missing project should fail")
	}

	idx, err := config.LoadProjectsIndex()
	if err != nil {
		t.Fatal(err)
	}
	if len(idx.Projects) != 1 || idx.Projects[0].ProjectID != "10002" || idx.Projects[0].Position != 1 {
		t.Errorf("projects = %+v", idx.Projects)
	}
}

func TestSettingsSetAndShow(t *testing.T) {
	setupHome(t)

	if _, err := execute(t, "settings", "set", "mode", "single"); err != nil {
		t.Fatalf("set error: %v", err)
	}
	if _, err := execute(t, "settings", "set", "colour", "blue"); err == nil {
		t.Error("unknown key should fail")
	}

	out, err := execute(t, "settings", "--yaml")
	if err != nil {
		t.Fatalf("show error: %v", err)
	}
	if !strings.Contains(out, "mode: single") {
		t.Errorf("settings yaml:\n%s", out)
	}

	out, err = execute(t, "settings", "--server", "https://logs.example")
	if err != nil {
		t.Fatalf("show error: %v", err)
	}
	if !strings.Contains(out, "https://logs.example") {
		t.Errorf("--server not applied:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, buildinfo.Version) {
		t.Errorf("version output:\n%s", out)
	}
}
