package cli

import (
	"fmt"

	"github.com/ratelab/ratelab/internal/config"
)

// loadSchedule resolves the schedule setup for a command. An empty dir
// means the built-in Illinois defaults; otherwise the directory is loaded
// and must validate cleanly.
func loadSchedule(dir string) (*config.Schedule, error) {
	if dir == "" {
		return config.Default(), nil
	}

	result, errs := config.Load(dir, config.LoadModeFailFast)
	if len(errs) > 0 {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("loading schedule from %s", dir), errs[0])
	}
	return result.Schedule, nil
}

// resolveSettings fills unset command flags from the environment. Flags
// take precedence; RATELAB_DB_PATH and RATELAB_SCHEDULE_DIR only apply
// where nothing was passed. scheduleDir may be nil for commands without
// a schedule flag.
func resolveSettings(database, scheduleDir *string) error {
	settings, err := config.ParseSettings()
	if err != nil {
		return WrapExitError(ExitCommandError, "reading environment settings", err)
	}
	if *database == "" {
		*database = settings.DBPath
	}
	if scheduleDir != nil && *scheduleDir == "" {
		*scheduleDir = settings.ScheduleDir
	}
	return nil
}
