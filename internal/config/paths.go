// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// GlobalDirName is the name of the global tasklog directory.
	GlobalDirName = ".tasklog"

	// LogsDirName is the name of the application log directory.
	LogsDirName = "logs"

	// HomeEnv overrides the global directory location when set.
	HomeEnv = "TASKLOG_HOME"
)

// File names
const (
	ProjectsFileName = "projects.yaml"
	SettingsFileName = "settings.yaml"
)

// GlobalDir returns the path to the global directory ($TASKLOG_HOME or ~/.tasklog/).
func GlobalDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalDirName), nil
}

// GlobalProjectsFile returns the path to the projects.yaml file.
func GlobalProjectsFile() (string, error) {
	return globalFile(ProjectsFileName)
}

// GlobalSettingsFile returns the path to the settings.yaml file.
func GlobalSettingsFile() (string, error) {
	return globalFile(SettingsFileName)
}

// GlobalLogsDir returns the path to the logs directory.
func GlobalLogsDir() (string, error) {
	return globalFile(LogsDirName)
}

func globalFile(name string) (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// EnsureGlobalDir creates the global directory if it doesn't exist.
func EnsureGlobalDir() error {
	dir, err := GlobalDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// EnsureGlobalLogsDir creates the global logs directory if it doesn't exist.
func EnsureGlobalLogsDir() error {
	dir, err := GlobalLogsDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
