package cli

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings are the process-level knobs read from the environment.
// Command-line flags take precedence over them.
type Settings struct {
	Addr      string        `env:"CRAPSIM_ADDR" envDefault:":8080"`
	RedisURL  string        `env:"CRAPSIM_REDIS_URL"`
	ReportDir string        `env:"CRAPSIM_REPORT_DIR"`
	ReportTTL time.Duration `env:"CRAPSIM_REPORT_TTL" envDefault:"24h"`
	MaxTrials int           `env:"CRAPSIM_MAX_TRIALS" envDefault:"100000"`
	LogLevel  string        `env:"CRAPSIM_LOG_LEVEL" envDefault:"info"`
	LogJSON   bool          `env:"CRAPSIM_LOG_JSON"`
}

// ParseEnv loads Settings from environment variables.
func ParseEnv() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}
