// Package cli implements the tasklog CLI commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/watchfire-io/tasklog/internal/config"
	"github.com/watchfire-io/tasklog/internal/logging"
	"github.com/watchfire-io/tasklog/internal/tui"
)

var (
	serverFlag     string
	tuiProjectFlag string
	tuiModeFlag    string
)

var rootCmd = &cobra.Command{
	Use:   "tasklog",
	Short: "Browse task logs by project and date range",
	Long: `tasklog queries a task log server for the entries of one project
within a date range (or on a single date) and shows them as a table.

Run without arguments to open the interactive view, or use 'tasklog query'
for scripting.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runTUI,
}

// Execute runs the CLI. Interrupts cancel in-flight requests.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "log server base URL (overrides settings)")
	rootCmd.Flags().StringVarP(&tuiProjectFlag, "project", "p", "", "preselect a project ID")
	rootCmd.Flags().StringVar(&tuiModeFlag, "mode", "", "date input mode: range or single")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive mode needs a terminal; use 'tasklog query' instead")
	}

	settings, err := loadEffectiveSettings(tuiModeFlag)
	if err != nil {
		return err
	}

	projects, err := config.LoadProjectsIndex()
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}

	// The terminal belongs to the TUI; stderr logging is redirected to file.
	output := settings.Logging.Output
	if output == logging.OutputStderr {
		output = logging.OutputFile
	}
	logger, err := logging.New(settings.Logging, output)
	if err != nil {
		return err
	}
	defer logging.Shutdown(logger)

	return tui.Run(tui.Options{
		Settings:  settings,
		Projects:  projects,
		Logger:    logger,
		ProjectID: tuiProjectFlag,
		Watch:     serverFlag == "" && tuiModeFlag == "",
	})
}
