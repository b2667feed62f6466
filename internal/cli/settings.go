package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/watchfire-io/tasklog/internal/config"
	"github.com/watchfire-io/tasklog/internal/models"
)

var settingsYAML bool

var settingsCmd = &cobra.Command{
	Use:     "settings",
	Aliases: []string{"config"},
	Short:   "Show effective settings",
	Long: `Show the effective settings from ~/.tasklog/settings.yaml.

Use 'tasklog settings set KEY VALUE' to change one value.`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change one setting",
	Long: fmt.Sprintf(`Change one setting and save settings.yaml.

Keys: %s`, strings.Join(config.SettableKeys, ", ")),
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.Flags().BoolVar(&settingsYAML, "yaml", false, "print the settings file as YAML")
	settingsCmd.AddCommand(settingsSetCmd)
}

// loadEffectiveSettings loads settings.yaml and applies --server and the
// given mode override.
func loadEffectiveSettings(mode string) (*models.Settings, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if serverFlag != "" {
		if err := config.SetSetting(settings, "server", serverFlag); err != nil {
			return nil, err
		}
	}
	if mode != "" {
		if err := config.SetSetting(settings, "mode", mode); err != nil {
			return nil, err
		}
	}
	return settings, nil
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	settings, err := loadEffectiveSettings("")
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if settingsYAML {
		data, err := yaml.Marshal(settings)
		if err != nil {
			return fmt.Errorf("failed to encode settings: %w", err)
		}
		_, err = out.Write(data)
		return err
	}

	path, err := config.GlobalSettingsFile()
	if err != nil {
		return err
	}

	rows := [][2]string{
		{"server", settings.Server.BaseURL},
		{"timeout", fmt.Sprintf("%ds", settings.Server.TimeoutSeconds)},
		{"rate_limit", formatRateLimit(settings.Server.RateLimit)},
		{"mode", string(settings.Picker.Mode)},
		{"display_format", settings.Picker.DisplayFormat},
		{"default_days", fmt.Sprintf("%d", settings.Picker.DefaultDays)},
		{"log_level", settings.Logging.Level},
		{"log_output", settings.Logging.Output},
	}

	fmt.Fprintln(out, styleHint.Render(path))
	for _, row := range rows {
		fmt.Fprintf(out, "  %s %s\n", styleLabel.Width(16).Render(row[0]), styleValue.Render(row[1]))
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if err := config.SetSetting(settings, args[0], args[1]); err != nil {
		return err
	}
	if err := config.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n", styleSuccess.Render("Saved"), args[0], args[1])
	return nil
}

func formatRateLimit(rps float64) string {
	if rps <= 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%g req/s", rps)
}
