package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ratelab/ratelab/internal/aggregate"
	"github.com/ratelab/ratelab/internal/store"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	ScheduleDir string
	Database    string
}

// ReportBand is one taxpayer band of the revenue projection.
type ReportBand struct {
	Band    string  `json:"band"`
	Rate    float64 `json:"rate"`
	Revenue float64 `json:"revenue"`
}

// ReportResult holds the aggregate report.
type ReportResult struct {
	Submissions  int          `json:"submissions"`
	AverageRates []float64    `json:"average_rates"`
	Bands        []ReportBand `json:"bands"`
	TotalRevenue float64      `json:"total_revenue"`
	Baseline     float64      `json:"baseline"`
	Delta        float64      `json:"delta"`
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report average submitted rates and projected revenue",
		Long: `Aggregate all submitted sessions in the event database.

Averages the submitted rate vectors, projects statewide revenue under
the average schedule, and compares it against the baseline.

Exit codes:
  0 - Report produced
  1 - No submissions in the database yet
  2 - Command error (database not found, etc.)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (defaults to RATELAB_DB_PATH)")
	cmd.Flags().StringVar(&opts.ScheduleDir, "schedule", "", "schedule configuration directory (defaults to RATELAB_SCHEDULE_DIR, then built-in)")

	return cmd
}

func runReport(opts *ReportOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if err := resolveSettings(&opts.Database, &opts.ScheduleDir); err != nil {
		return err
	}

	sched, err := loadSchedule(opts.ScheduleDir)
	if err != nil {
		return err
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	agg := aggregate.New(st, sched.Population, sched.Baseline)

	avg, count, err := agg.AverageRates(ctx)
	if err != nil {
		if aggregate.IsNoData(err) {
			_ = formatter.Error("E_NO_DATA", "no submissions yet", nil)
			return NewExitError(ExitFailure, "no submissions yet")
		}
		return WrapExitError(ExitCommandError, "querying submissions", err)
	}
	formatter.VerboseLog("Aggregated %d submission(s)", count)

	bandRevenue := agg.BandRevenueDisplay(avg)
	delta := agg.RevenueDelta(avg)

	result := ReportResult{
		Submissions:  count,
		AverageRates: avg,
		Bands:        make([]ReportBand, len(bandRevenue)),
		TotalRevenue: agg.TotalRevenue(avg),
		Baseline:     agg.Baseline(),
		Delta:        delta.Value,
	}
	for i, rev := range bandRevenue {
		result.Bands[i] = ReportBand{Band: sched.BandLabels[i], Revenue: rev}
		if i < len(avg) {
			result.Bands[i].Rate = avg[i]
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	return outputReportText(formatter, result, delta)
}

// outputReportText renders the aggregate report as a table.
func outputReportText(formatter *OutputFormatter, result ReportResult, delta aggregate.Delta) error {
	w := formatter.Writer

	fmt.Fprintf(w, "Average rates across %d submission(s)\n\n", result.Submissions)
	for _, b := range result.Bands {
		fmt.Fprintf(w, "  %-22s %8s  %16s\n", b.Band, formatPercent(b.Rate), formatDollars(b.Revenue))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Projected revenue: %s\n", formatDollars(result.TotalRevenue))
	fmt.Fprintf(w, "Baseline:          %s\n", formatDollars(result.Baseline))

	switch delta.Sign {
	case aggregate.SignPositive:
		fmt.Fprintf(w, "The average schedule collects %s more than the baseline.\n", formatDollars(delta.Magnitude))
	case aggregate.SignNegative:
		fmt.Fprintf(w, "The average schedule collects %s less than the baseline.\n", formatDollars(delta.Magnitude))
	default:
		fmt.Fprintln(w, "The average schedule matches the baseline.")
	}
	return nil
}
