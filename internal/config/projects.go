package config

import (
	"fmt"
	"strings"

	"github.com/watchfire-io/tasklog/internal/models"
)

// LoadProjectsIndex loads the projects index from ~/.tasklog/projects.yaml.
// If the file doesn't exist, returns an empty index.
func LoadProjectsIndex() (*models.ProjectsIndex, error) {
	path, err := GlobalProjectsFile()
	if err != nil {
		return nil, err
	}
	return LoadYAMLOrDefault(path, models.NewProjectsIndex)
}

// SaveProjectsIndex saves the projects index to ~/.tasklog/projects.yaml.
func SaveProjectsIndex(index *models.ProjectsIndex) error {
	if err := EnsureGlobalDir(); err != nil {
		return err
	}

	path, err := GlobalProjectsFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, index)
}

// RegisterProject adds a project to the selector list, or renames it if the
// ID is already present.
func RegisterProject(projectID, name string) error {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return fmt.Errorf("project ID cannot be empty")
	}

	index, err := LoadProjectsIndex()
	if err != nil {
		return err
	}

	if existing := index.FindProject(projectID); existing != nil {
		existing.Name = name
		return SaveProjectsIndex(index)
	}

	index.AddProject(models.ProjectEntry{
		ProjectID: projectID,
		Name:      name,
	})

	return SaveProjectsIndex(index)
}

// UnregisterProject removes a project from the selector list.
func UnregisterProject(projectID string) (bool, error) {
	index, err := LoadProjectsIndex()
	if err != nil {
		return false, err
	}

	if !index.RemoveProject(projectID) {
		return false, nil
	}

	return true, SaveProjectsIndex(index)
}
