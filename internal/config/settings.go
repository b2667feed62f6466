package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/watchfire-io/tasklog/internal/models"
)

// LoadSettings loads the global settings from ~/.tasklog/settings.yaml.
// If the file doesn't exist, returns default settings. Missing fields are
// filled with defaults.
func LoadSettings() (*models.Settings, error) {
	path, err := GlobalSettingsFile()
	if err != nil {
		return nil, err
	}
	settings, err := LoadYAMLOrDefault(path, models.NewSettings)
	if err != nil {
		return nil, err
	}
	settings.FillDefaults()
	return settings, nil
}

// SaveSettings saves the global settings to ~/.tasklog/settings.yaml.
func SaveSettings(settings *models.Settings) error {
	path, err := GlobalSettingsFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, settings)
}

// SettableKeys lists the keys accepted by SetSetting, in display order.
var SettableKeys = []string{"server", "timeout", "rate_limit", "mode", "log_level", "log_output"}

// SetSetting updates a single setting from its string form.
func SetSetting(settings *models.Settings, key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "server":
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("invalid server URL %q: expected http:// or https://", value)
		}
		settings.Server.BaseURL = strings.TrimRight(value, "/")
	case "timeout":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid timeout %q: expected positive number of seconds", value)
		}
		settings.Server.TimeoutSeconds = n
	case "rate_limit":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("invalid rate_limit %q: expected requests per second >= 0", value)
		}
		settings.Server.RateLimit = f
	case "mode":
		m := models.Mode(value)
		if !m.Valid() {
			return fmt.Errorf("invalid mode %q (valid: range, single)", value)
		}
		settings.Picker.Mode = m
	case "log_level":
		switch value {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("invalid log_level %q (valid: debug, info, warn, error)", value)
		}
		settings.Logging.Level = value
	case "log_output":
		switch value {
		case "none", "file", "stderr":
		default:
			return fmt.Errorf("invalid log_output %q (valid: none, file, stderr)", value)
		}
		settings.Logging.Output = value
	default:
		return fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(SettableKeys, ", "))
	}
	return nil
}
