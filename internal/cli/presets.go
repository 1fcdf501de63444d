package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ratelab/ratelab/internal/preset"
)

// PresetsOptions holds flags for the presets command.
type PresetsOptions struct {
	*RootOptions
	ScheduleDir string
}

// PresetEntry is one catalog entry for listing.
type PresetEntry struct {
	Key   string    `json:"key"`
	Label string    `json:"label"`
	Rates []float64 `json:"rates"`
}

// NewPresetsCommand creates the presets command.
func NewPresetsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PresetsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "presets",
		Short:         "List the preset rate catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresets(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ScheduleDir, "schedule", "", "schedule configuration directory (defaults to built-in)")

	return cmd
}

func runPresets(opts *PresetsOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	sched, err := loadSchedule(opts.ScheduleDir)
	if err != nil {
		return err
	}

	catalog, err := preset.NewCatalog(sched.Presets, len(sched.Brackets))
	if err != nil {
		return WrapExitError(ExitCommandError, "building preset catalog", err)
	}

	entries := make([]PresetEntry, 0, len(catalog.Entries()))
	for _, p := range catalog.Entries() {
		entries = append(entries, PresetEntry{Key: p.Key, Label: p.Label, Rates: p.Rates})
	}

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}

	w := formatter.Writer
	for _, e := range entries {
		fmt.Fprintf(w, "%-10s %s\n", e.Key, e.Label)
		if opts.Verbose {
			for i, r := range e.Rates {
				fmt.Fprintf(w, "    %-22s %s\n", sched.BandLabels[i], formatPercent(r))
			}
		}
	}
	return nil
}
