// Package models contains shared data structures used across the application.
package models

// ProjectEntry is one option of the project selector.
type ProjectEntry struct {
	ProjectID string `yaml:"project_id"`
	Name      string `yaml:"name"`
	Position  int    `yaml:"position"`
}

// Label returns the text shown in the selector.
func (e ProjectEntry) Label() string {
	if e.Name == "" {
		return e.ProjectID
	}
	return e.Name
}

// ProjectsIndex represents the global projects.yaml file.
type ProjectsIndex struct {
	Version  int            `yaml:"version"`
	Projects []ProjectEntry `yaml:"projects"`
}

// NewProjectsIndex creates a new empty projects index.
func NewProjectsIndex() *ProjectsIndex {
	return &ProjectsIndex{
		Version:  1,
		Projects: []ProjectEntry{},
	}
}

// AddProject adds a project to the index.
func (idx *ProjectsIndex) AddProject(entry ProjectEntry) {
	// Set position to end of list
	entry.Position = len(idx.Projects) + 1
	idx.Projects = append(idx.Projects, entry)
}

// RemoveProject removes a project from the index by ID.
func (idx *ProjectsIndex) RemoveProject(projectID string) bool {
	for i, p := range idx.Projects {
		if p.ProjectID == projectID {
			idx.Projects = append(idx.Projects[:i], idx.Projects[i+1:]...)
			// Reorder positions
			for j := i; j < len(idx.Projects); j++ {
				idx.Projects[j].Position = j + 1
			}
			return true
		}
	}
	return false
}

// FindProject finds a project by ID in the index.
func (idx *ProjectsIndex) FindProject(projectID string) *ProjectEntry {
	for i := range idx.Projects {
		if idx.Projects[i].ProjectID == projectID {
			return &idx.Projects[i]
		}
	}
	return nil
}
