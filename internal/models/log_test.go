package models

import (
	"encoding/json"
	"testing"
)

func TestLogEntryDecodeUserID(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "number", body: `{"user_id": 1}`, want: "1"},
		{name: "large number", body: `{"user_id": 9007199254740993}`, want: "9007199254740993"},
		{name: "exponent", body: `{"user_id": 1e3}`, want: "1000"},
		{name: "fraction", body: `{"user_id": 2.50}`, want: "2.5"},
		{name: "negative", body: `{"user_id": -7}`, want: "-7"},
		{name: "bool", body: `{"user_id": true}`, want: "true"},
		{name: "string", body: `{"user_id": "aB3xYz"}`, want: "aB3xYz"},
		{name: "null", body: `{"user_id": null}`, want: ""},
		{name: "missing", body: `{}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e LogEntry
			if err := json.Unmarshal([]byte(tt.body), &e); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.body, err)
			}
			if got := e.UserID.String(); got != tt.want {
				t.Errorf("UserID = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLogEntryDecodeRejectsCompositeUserID(t *testing.T) {
	for _, body := range []string{`{"user_id": {"x": 1}}`, `{"user_id": [1]}`} {
		var e LogEntry
		if err := json.Unmarshal([]byte(body), &e); err == nil {
			t.Errorf("Unmarshal(%s): expected error", body)
		}
	}
}

func TestLogEntryDecodeArray(t *testing.T) {
	body := `[{"user_name":"Ann","user_id":1,"task":"Fix bug","task_link":"/t/1","datetime_creating":"2024-01-02 10:00"}]`

	var entries []LogEntry
	if err := json.Unmarshal([]byte(body), &entries); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	want := LogEntry{
		UserName:         "Ann",
		UserID:           "1",
		Task:             "Fix bug",
		TaskLink:         "/t/1",
		DatetimeCreating: "2024-01-02 10:00",
	}
	if entries[0] != want {
		t.Errorf("entry = %+v, want %+v", entries[0], want)
	}
}
