package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// App holds process-level configuration for the combat classes runtime.
type App struct {
	// Logging
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	// SettingsPath is the roster/tuning file, created with defaults on first run.
	SettingsPath string `yaml:"settings_path" env:"SETTINGS_PATH"`

	// TickInterval is the cadence of the periodic knockback scheduler.
	TickInterval time.Duration `yaml:"tick_interval" env:"TICK_INTERVAL"`

	// Journal
	Journal JournalConfig `yaml:"journal" envPrefix:"JOURNAL_"`

	// ScenarioPath is the scripted host timeline replayed by combatsim.
	ScenarioPath string `yaml:"scenario_path" env:"SCENARIO_PATH"`
}

// JournalConfig controls the optional PostgreSQL combat journal.
// An empty DSN disables the journal.
type JournalConfig struct {
	DSN           string        `yaml:"dsn" env:"DSN"`
	BufferSize    int           `yaml:"buffer_size" env:"BUFFER_SIZE"`
	FlushInterval time.Duration `yaml:"flush_interval" env:"FLUSH_INTERVAL"`
}

// Enabled reports whether a journal database is configured.
func (j JournalConfig) Enabled() bool {
	return j.DSN != ""
}

// DefaultApp returns App config with sensible defaults.
func DefaultApp() App {
	return App{
		LogLevel:     "info",
		SettingsPath: "config/CS_CombatClasses/Settings.yaml",
		TickInterval: 500 * time.Millisecond,
		Journal: JournalConfig{
			BufferSize:    256,
			FlushInterval: 2 * time.Second,
		},
		ScenarioPath: "config/scenario.yaml",
	}
}

// LoadApp loads process config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadApp(path string) (App, error) {
	cfg := DefaultApp()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overrides cfg from COMBATCLASSES_* environment variables.
// Unset variables leave the file/default values untouched.
func ApplyEnv(cfg *App) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "COMBATCLASSES_"}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
