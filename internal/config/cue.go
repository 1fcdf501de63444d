package config

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/ratelab/ratelab/internal/schedule"
	"github.com/ratelab/ratelab/internal/taxcalc"
)

// LoadMode controls how errors are handled during schedule loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadResult contains the results of loading a schedule directory.
type LoadResult struct {
	Schedule  *Schedule
	CUEValue  cue.Value // The raw CUE value for additional processing
	FileCount int       // Number of CUE files found
}

// cueBracket mirrors one entry of the schedule.brackets list.
type cueBracket struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// cueSchedule mirrors the top-level schedule section.
type cueSchedule struct {
	Brackets        []cueBracket `json:"brackets"`
	BandLabels      []string     `json:"bandLabels"`
	DefaultRates    []float64    `json:"defaultRates"`
	DefaultIncome   float64      `json:"defaultIncome"`
	BaselineRevenue float64      `json:"baselineRevenue"`
}

// cuePreset mirrors one preset entry; the key comes from the field label.
type cuePreset struct {
	Label string    `json:"label"`
	Rates []float64 `json:"rates"`
}

// cuePopulationRow mirrors one entry of the population list.
type cuePopulationRow struct {
	Band string    `json:"band"`
	AGI  []float64 `json:"agi"`
}

// Load reads schedule configuration from a directory of CUE files.
// Missing sections fall back to the built-in defaults; present sections
// replace their default wholesale. Validation runs on the merged result.
func Load(dir string, mode LoadMode) (*LoadResult, []error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("schedule directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing schedule directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}}
	}

	result := &LoadResult{
		Schedule:  Default(),
		CUEValue:  value,
		FileCount: len(cueFiles),
	}
	var errs []error

	if e := decodeSchedule(value, result.Schedule); e != nil {
		errs = append(errs, e)
		if mode == LoadModeFailFast {
			return result, errs
		}
	}
	if e := decodePresets(value, result.Schedule); e != nil {
		errs = append(errs, e)
		if mode == LoadModeFailFast {
			return result, errs
		}
	}
	if e := decodePopulation(value, result.Schedule); e != nil {
		errs = append(errs, e)
		if mode == LoadModeFailFast {
			return result, errs
		}
	}

	for _, e := range result.Schedule.Validate() {
		errs = append(errs, e)
		if mode == LoadModeFailFast {
			return result, errs
		}
	}

	return result, errs
}

// decodeSchedule overlays the schedule section onto dst.
func decodeSchedule(value cue.Value, dst *Schedule) error {
	sec := value.LookupPath(cue.ParsePath("schedule"))
	if !sec.Exists() {
		return nil
	}
	var raw cueSchedule
	if err := sec.Decode(&raw); err != nil {
		return &LoadError{Code: ErrCodeDecodeError, Message: fmt.Sprintf("decoding schedule: %v", err), Pos: sec.Pos()}
	}
	if raw.Brackets != nil {
		dst.Brackets = make([]schedule.Bracket, len(raw.Brackets))
		for i, b := range raw.Brackets {
			dst.Brackets[i] = schedule.Bracket{Lower: b.Lower, Upper: b.Upper}
		}
	}
	if raw.BandLabels != nil {
		dst.BandLabels = raw.BandLabels
	}
	if raw.DefaultRates != nil {
		dst.DefaultRates = schedule.RateVector(raw.DefaultRates)
	}
	if raw.DefaultIncome != 0 {
		dst.DefaultIncome = raw.DefaultIncome
	}
	if raw.BaselineRevenue != 0 {
		dst.Baseline = raw.BaselineRevenue
	}
	return nil
}

// decodePresets replaces the preset catalog when a preset section exists.
// Field labels become preset keys, in declaration order.
func decodePresets(value cue.Value, dst *Schedule) error {
	sec := value.LookupPath(cue.ParsePath("preset"))
	if !sec.Exists() {
		return nil
	}
	iter, err := sec.Fields()
	if err != nil {
		return &LoadError{Code: ErrCodeDecodeError, Message: fmt.Sprintf("iterating presets: %v", err), Pos: sec.Pos()}
	}
	var presets []schedule.Preset
	for iter.Next() {
		var raw cuePreset
		if err := iter.Value().Decode(&raw); err != nil {
			return &LoadError{
				Code:    ErrCodePreset,
				Message: fmt.Sprintf("decoding preset %q: %v", iter.Label(), err),
				Pos:     iter.Value().Pos(),
			}
		}
		presets = append(presets, schedule.Preset{
			Key:   iter.Label(),
			Label: raw.Label,
			Rates: schedule.RateVector(raw.Rates),
		})
	}
	dst.Presets = presets
	return nil
}

// decodePopulation replaces the population dataset when present.
func decodePopulation(value cue.Value, dst *Schedule) error {
	sec := value.LookupPath(cue.ParsePath("population"))
	if !sec.Exists() {
		return nil
	}
	var raw []cuePopulationRow
	if err := sec.Decode(&raw); err != nil {
		return &LoadError{Code: ErrCodePopulation, Message: fmt.Sprintf("decoding population: %v", err), Pos: sec.Pos()}
	}
	pop := make(taxcalc.Population, len(raw))
	for i, row := range raw {
		pop[i] = taxcalc.PopulationRow{Band: row.Band, AGI: row.AGI}
	}
	dst.Population = pop
	return nil
}

// findCUEFiles walks the directory and returns all .cue file paths.
func findCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
