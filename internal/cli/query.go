package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/watchfire-io/tasklog/internal/daterange"
	"github.com/watchfire-io/tasklog/internal/logging"
	"github.com/watchfire-io/tasklog/internal/logquery"
	"github.com/watchfire-io/tasklog/internal/models"
	"github.com/watchfire-io/tasklog/internal/render"
)

// queryOptions holds the flags of 'tasklog query'.
type queryOptions struct {
	project string
	from    string
	to      string
	preset  string
	date    string
	mode    string
	format  string
	url     bool
}

var queryFlags queryOptions

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Fetch the logs of a project and print them as a table",
	Long: `Fetch the logs of a project and print them as a table.

In range mode the range defaults to the last 30 days ending today and can be
set with --from/--to or a --preset. In single mode --date filters one day and
may be omitted. Dates are DD.MM.YYYY or YYYY-MM-DD.

Without --project nothing is requested and an empty table is printed.
Output defaults to text on a terminal and json otherwise.`,
	Example: `  tasklog query --project 10001
  tasklog query --project 10001 --preset last_7_days --format html
  tasklog query --project 10001 --from 01.09.2026 --to 30.09.2026
  tasklog query --project 10001 --mode single --date 2026-10-03`,
	Args: cobra.NoArgs,
	RunE: runQuery,
}

func init() {
	f := queryCmd.Flags()
	f.StringVarP(&queryFlags.project, "project", "p", "", "project ID")
	f.StringVar(&queryFlags.from, "from", "", "range start date")
	f.StringVar(&queryFlags.to, "to", "", "range end date")
	f.StringVar(&queryFlags.preset, "preset", "", "range preset: today, yesterday, last_7_days, last_30_days, this_month")
	f.StringVar(&queryFlags.date, "date", "", "single date (single mode)")
	f.StringVar(&queryFlags.mode, "mode", "", "date input mode: range or single (default from settings)")
	f.StringVarP(&queryFlags.format, "format", "f", "", "output format: text, html or json")
	f.BoolVar(&queryFlags.url, "url", false, "print the request URL instead of fetching")
}

func runQuery(cmd *cobra.Command, args []string) error {
	opts := queryFlags

	// --date alone implies single mode.
	modeOverride := opts.mode
	if modeOverride == "" && opts.date != "" && opts.from == "" && opts.to == "" && opts.preset == "" {
		modeOverride = string(models.ModeSingle)
	}

	settings, err := loadEffectiveSettings(modeOverride)
	if err != nil {
		return err
	}

	// Without a project the date flags are never read: the widget clears
	// the table and nothing is requested.
	q := models.QueryState{Mode: settings.Picker.Mode}
	if opts.project != "" {
		picker := daterange.NewPicker(daterange.OptionsFromSettings(settings))
		if q, err = buildQuery(picker, settings.Picker.Mode, opts); err != nil {
			return err
		}
	}

	format := opts.format
	if format == "" {
		format = defaultFormat(cmd.OutOrStdout())
	}
	renderer, err := render.New(format)
	if err != nil {
		return err
	}

	logger, err := logging.New(settings.Logging, "")
	if err != nil {
		return err
	}
	defer logging.Shutdown(logger)

	client, err := logquery.NewClient(logquery.ClientOptionsFromSettings(settings), logger)
	if err != nil {
		return err
	}

	if opts.url {
		if !q.HasProject() {
			return fmt.Errorf("--url needs --project")
		}
		fmt.Fprintln(cmd.OutOrStdout(), client.URL(q))
		return nil
	}

	widget := logquery.NewWidget(settings.Picker.Mode, client, renderer, logger)
	submitErr := widget.Submit(cmd.Context(), q)

	// A failed query still prints the (empty) table.
	if err := renderer.Render(cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if submitErr != nil {
		return fmt.Errorf("query failed: %w", submitErr)
	}
	return nil
}

// buildQuery turns the flags into a QueryState for mode.
func buildQuery(picker *daterange.Picker, mode models.Mode, opts queryOptions) (models.QueryState, error) {
	q := models.QueryState{ProjectID: opts.project, Mode: mode}

	if mode == models.ModeSingle {
		if opts.from != "" || opts.to != "" || opts.preset != "" {
			return q, fmt.Errorf("--from, --to and --preset need range mode")
		}
		if opts.date == "" {
			return q, nil
		}
		d, err := picker.ParseDate(opts.date)
		if err != nil {
			return q, err
		}
		q.Date = &d
		return q, nil
	}

	if opts.date != "" {
		return q, fmt.Errorf("--date needs single mode (use --mode single)")
	}
	if opts.preset != "" && (opts.from != "" || opts.to != "") {
		return q, fmt.Errorf("--preset cannot be combined with --from/--to")
	}

	switch {
	case opts.preset != "":
		if err := picker.ApplyPreset(opts.preset); err != nil {
			return q, err
		}
	case opts.from != "" || opts.to != "":
		sel := picker.Selection()
		start, end := sel.Start, sel.End
		if opts.from != "" {
			d, err := picker.ParseDate(opts.from)
			if err != nil {
				return q, err
			}
			start = d
		}
		if opts.to != "" {
			d, err := picker.ParseDate(opts.to)
			if err != nil {
				return q, err
			}
			end = d
		}
		if err := picker.SetRange(start, end); err != nil {
			return q, err
		}
	}

	r := picker.Selection()
	q.Range = &r
	return q, nil
}

// defaultFormat is text for terminals and json for pipes and files.
func defaultFormat(w io.Writer) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return render.FormatText
	}
	return render.FormatJSON
}
