package models

// ServerConfig describes the remote /logs endpoint.
type ServerConfig struct {
	BaseURL        string  `yaml:"base_url"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	RateLimit      float64 `yaml:"rate_limit"` // requests per second, 0 = unlimited
}

// PickerConfig holds the date picker options.
type PickerConfig struct {
	Mode          Mode   `yaml:"mode"`           // "range" | "single"
	DisplayFormat string `yaml:"display_format"` // moment-style tokens, e.g. "DD.MM.YYYY"
	Separator     string `yaml:"separator"`
	DefaultDays   int    `yaml:"default_days"`
}

// Labels are the static UI strings of the picker. They are configurable but
// never translated at runtime.
type Labels struct {
	Apply       string `yaml:"apply"`
	Cancel      string `yaml:"cancel"`
	From        string `yaml:"from"`
	To          string `yaml:"to"`
	CustomRange string `yaml:"custom_range"`
	Today       string `yaml:"today"`
	Yesterday   string `yaml:"yesterday"`
	Last7Days   string `yaml:"last_7_days"`
	Last30Days  string `yaml:"last_30_days"`
	ThisMonth   string `yaml:"this_month"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug" | "info" | "warn" | "error"
	Output string `yaml:"output"` // "none" | "file" | "stderr"
}

// Settings represents global application settings.
// This corresponds to ~/.tasklog/settings.yaml.
type Settings struct {
	Version int           `yaml:"version"`
	Server  ServerConfig  `yaml:"server"`
	Picker  PickerConfig  `yaml:"picker"`
	Labels  Labels        `yaml:"labels"`
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultLabels returns the built-in Russian labels.
func DefaultLabels() Labels {
	return Labels{
		Apply:       "Применить",
		Cancel:      "Отменить",
		From:        "От",
		To:          "До",
		CustomRange: "Своя дата",
		Today:       "Сегодня",
		Yesterday:   "Вчера",
		Last7Days:   "Последние 7 дней",
		Last30Days:  "Последние 30 дней",
		ThisMonth:   "Этот месяц",
	}
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Server: ServerConfig{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 10,
			RateLimit:      0,
		},
		Picker: PickerConfig{
			Mode:          ModeRange,
			DisplayFormat: "DD.MM.YYYY",
			Separator:     " - ",
			DefaultDays:   30,
		},
		Labels: DefaultLabels(),
		Logging: LoggingConfig{
			Level:  "info",
			Output: "file",
		},
	}
}

// FillDefaults replaces zero values with defaults. Settings files written by
// older versions or by hand may omit whole sections.
func (s *Settings) FillDefaults() {
	d := NewSettings()
	if s.Version == 0 {
		s.Version = d.Version
	}
	if s.Server.BaseURL == "" {
		s.Server.BaseURL = d.Server.BaseURL
	}
	if s.Server.TimeoutSeconds <= 0 {
		s.Server.TimeoutSeconds = d.Server.TimeoutSeconds
	}
	if s.Server.RateLimit < 0 {
		s.Server.RateLimit = 0
	}
	if !s.Picker.Mode.Valid() {
		s.Picker.Mode = d.Picker.Mode
	}
	if s.Picker.DisplayFormat == "" {
		s.Picker.DisplayFormat = d.Picker.DisplayFormat
	}
	if s.Picker.Separator == "" {
		s.Picker.Separator = d.Picker.Separator
	}
	if s.Picker.DefaultDays <= 0 {
		s.Picker.DefaultDays = d.Picker.DefaultDays
	}
	fillLabel(&s.Labels.Apply, d.Labels.Apply)
	fillLabel(&s.Labels.Cancel, d.Labels.Cancel)
	fillLabel(&s.Labels.From, d.Labels.From)
	fillLabel(&s.Labels.To, d.Labels.To)
	fillLabel(&s.Labels.CustomRange, d.Labels.CustomRange)
	fillLabel(&s.Labels.Today, d.Labels.Today)
	fillLabel(&s.Labels.Yesterday, d.Labels.Yesterday)
	fillLabel(&s.Labels.Last7Days, d.Labels.Last7Days)
	fillLabel(&s.Labels.Last30Days, d.Labels.Last30Days)
	fillLabel(&s.Labels.ThisMonth, d.Labels.ThisMonth)
	if s.Logging.Level == "" {
		s.Logging.Level = d.Logging.Level
	}
	if s.Logging.Output == "" {
		s.Logging.Output = d.Logging.Output
	}
}

func fillLabel(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}
