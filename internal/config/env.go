package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings are runtime knobs sourced from environment variables. Schedule
// semantics never live here; this covers paths and operational limits.
type Settings struct {
	DBPath      string        `env:"RATELAB_DB_PATH" envDefault:"ratelab.db"`
	ScheduleDir string        `env:"RATELAB_SCHEDULE_DIR"`
	GeoDBPath   string        `env:"RATELAB_GEOIP_DB"`
	GeoTimeout  time.Duration `env:"RATELAB_GEO_TIMEOUT" envDefault:"2s"`
}

// ParseSettings loads Settings from the environment.
func ParseSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}
