package models

import "testing"

func TestProjectsIndexAddRemove(t *testing.T) {
	idx := NewProjectsIndex()
	idx.AddProject(ProjectEntry{ProjectID: "10001", Name: "Backend"})
	idx.AddProject(ProjectEntry{ProjectID: "10002", Name: "Frontend"})
	idx.AddProject(ProjectEntry{ProjectID: "10003"})

	if got := idx.Projects[2].Position; got != 3 {
		t.Fatalf("position = %d, want 3", got)
	}
	if got := idx.Projects[2].Label(); got != "10003" {
		t.Errorf("Label() = %q, want fallback to ID", got)
	}

	if !idx.RemoveProject("10001") {
		t.Fatal("RemoveProject returned false for existing project")
	}
	if idx.RemoveProject("10001") {
		t.Error("RemoveProject returned true for missing project")
	}
	for i, p := range idx.Projects {
		if p.Position != i+1 {
			t.Errorf("project %s position = %d, want %d", p.ProjectID, p.Position, i+1)
		}
	}

	if p := idx.FindProject("10002"); p == nil || p.Name != "Frontend" {
		t.Errorf("FindProject(10002) = %+v", p)
	}
	if p := idx.FindProject("nope"); p != nil {
		t.Errorf("FindProject(nope) = %+v, want nil", p)
	}
}

func TestSettingsFillDefaults(t *testing.T) {
	s := &Settings{
		Server: ServerConfig{BaseURL: "https://logs.example.com"},
		Picker: PickerConfig{Mode: "weird"},
		Labels: Labels{Apply: "Apply"},
	}
	s.FillDefaults()

	if s.Server.BaseURL != "https://logs.example.com" {
		t.Errorf("BaseURL overwritten: %q", s.Server.BaseURL)
	}
	if s.Server.TimeoutSeconds != 10 {
		t.Errorf("TimeoutSeconds = %d, want 10", s.Server.TimeoutSeconds)
	}
	if s.Picker.Mode != ModeRange {
		t.Errorf("Mode = %q, want %q", s.Picker.Mode, ModeRange)
	}
	if s.Labels.Apply != "Apply" {
		t.Errorf("Apply label overwritten: %q", s.Labels.Apply)
	}
	if s.Labels.Cancel != "Отменить" {
		t.Errorf("Cancel label = %q, want default", s.Labels.Cancel)
	}
	if s.Picker.Separator != " - " {
		t.Errorf("Separator = %q", s.Picker.Separator)
	}
}
