package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ratelab/ratelab/internal/aggregate"
	"github.com/ratelab/ratelab/internal/config"
	"github.com/ratelab/ratelab/internal/preset"
	"github.com/ratelab/ratelab/internal/schedule"
	"github.com/ratelab/ratelab/internal/taxcalc"
)

// CalcOptions holds flags for the calc command.
type CalcOptions struct {
	*RootOptions
	ScheduleDir string
	Income      float64
	Rates       string
	Preset      string
}

// CalcBracketResult is the tax owed within one bracket.
type CalcBracketResult struct {
	Band   string  `json:"band"`
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

// CalcResult holds the full bill breakdown.
type CalcResult struct {
	Income        float64             `json:"income"`
	Total         float64             `json:"total"`
	EffectiveRate float64             `json:"effective_rate"`
	Brackets      []CalcBracketResult `json:"brackets"`
	CurrentBill   float64             `json:"current_bill"`
	Difference    float64             `json:"difference"`
}

// NewCalcCommand creates the calc command.
func NewCalcCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CalcOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute a marginal tax bill",
		Long: `Compute the tax owed on an income under a rate schedule.

Rates come from --rates (comma-separated fractions, one per bracket),
from --preset (a catalog key), or default to the current flat schedule.
The bill is always compared against the current flat schedule.

Examples:
  ratelab calc --income 60000
  ratelab calc --income 60000 --rates 0.02,0.04,0.06,0.06,0.06
  ratelab calc --income 85000 --preset MA_2018`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ScheduleDir, "schedule", "", "schedule configuration directory (defaults to built-in)")
	cmd.Flags().Float64Var(&opts.Income, "income", 0, "annual income (defaults to the schedule's default)")
	cmd.Flags().StringVar(&opts.Rates, "rates", "", "comma-separated rate fractions, one per bracket")
	cmd.Flags().StringVar(&opts.Preset, "preset", "", "use a preset's rates by catalog key")
	cmd.MarkFlagsMutuallyExclusive("rates", "preset")

	return cmd
}

func runCalc(opts *CalcOptions, cmd *cobra.Command) error {
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

	income := opts.Income
	if income == 0 {
		income = sched.DefaultIncome
	}
	if income < 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("income must be non-negative, got %v", income))
	}

	rates, err := resolveRates(opts, sched)
	if err != nil {
		return err
	}

	comp := taxcalc.Compute(income, rates, sched.Brackets)
	comparison := aggregate.CompareBills(income, rates, sched.DefaultRates, sched.Brackets)

	result := CalcResult{
		Income:      income,
		Total:       comp.Total,
		Brackets:    make([]CalcBracketResult, len(comp.PerBracket)),
		CurrentBill: comparison.Current,
		Difference:  comparison.Delta.Value,
	}
	if income > 0 {
		result.EffectiveRate = comp.Total / income
	}
	for i, amt := range comp.PerBracket {
		result.Brackets[i] = CalcBracketResult{
			Band:   sched.BandLabels[i],
			Rate:   rates[i],
			Amount: amt,
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	return outputCalcText(formatter, result, comparison)
}

// resolveRates picks the rate vector from flags, falling back to the
// schedule default.
func resolveRates(opts *CalcOptions, sched *config.Schedule) (schedule.RateVector, error) {
	switch {
	case opts.Preset != "":
		catalog, err := preset.NewCatalog(sched.Presets, len(sched.Brackets))
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "building preset catalog", err)
		}
		rates, err := catalog.Resolve(opts.Preset)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("unknown preset %q", opts.Preset), err)
		}
		return rates, nil

	case opts.Rates != "":
		parts := strings.Split(opts.Rates, ",")
		if len(parts) != len(sched.Brackets) {
			return nil, NewExitError(ExitCommandError,
				fmt.Sprintf("expected %d rates, got %d", len(sched.Brackets), len(parts)))
		}
		rates := make(schedule.RateVector, len(parts))
		for i, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, WrapExitError(ExitCommandError, fmt.Sprintf("parsing rate %q", p), err)
			}
			if f < 0 || f > 1 {
				return nil, NewExitError(ExitCommandError, fmt.Sprintf("rate %v outside [0, 1]", f))
			}
			rates[i] = schedule.RoundFraction(f)
		}
		return rates, nil

	default:
		return sched.DefaultRates.Clone(), nil
	}
}

// outputCalcText renders the bill breakdown as a table.
func outputCalcText(formatter *OutputFormatter, result CalcResult, comparison aggregate.BillComparison) error {
	w := formatter.Writer

	fmt.Fprintf(w, "Income: %s\n\n", formatDollars(result.Income))
	for _, b := range result.Brackets {
		fmt.Fprintf(w, "  %-22s %8s  %12s\n", b.Band, formatPercent(b.Rate), formatDollars(b.Amount))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total bill:        %s\n", formatDollars(result.Total))
	fmt.Fprintf(w, "Effective rate:    %s\n", formatPercent(result.EffectiveRate))
	fmt.Fprintf(w, "Current flat bill: %s\n", formatDollars(result.CurrentBill))

	switch comparison.Delta.Sign {
	case aggregate.SignPositive:
		fmt.Fprintf(w, "You would pay %s more.\n", formatDollars(comparison.Delta.Magnitude))
	case aggregate.SignNegative:
		fmt.Fprintf(w, "You would pay %s less.\n", formatDollars(comparison.Delta.Magnitude))
	default:
		fmt.Fprintln(w, "Your bill would not change.")
	}
	return nil
}
