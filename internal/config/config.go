// Package config loads nbplace settings from a config file, the
// environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/neurobreath/placement/internal/plan"
)

// EnvPrefix prefixes every environment variable, e.g. NBPLACE_PLAN_WEEKS.
const EnvPrefix = "NBPLACE"

// Config is the resolved configuration.
type Config struct {
	Database Database `mapstructure:"database"`
	Catalog  Catalog  `mapstructure:"catalog"`
	Plan     Plan     `mapstructure:"plan"`
	Logging  Logging  `mapstructure:"logging"`
}

// Database locates the SQLite file. An empty path uses the store default.
type Database struct {
	Path string `mapstructure:"path"`
}

// Catalog optionally points at a YAML lesson catalog. Empty uses the
// built-in catalog.
type Catalog struct {
	Path string `mapstructure:"path"`
}

// Plan holds schedule defaults. Zero minutes or days use the learner
// group's practice defaults.
type Plan struct {
	MinutesPerDay    int `mapstructure:"minutes_per_day"`
	Weeks            int `mapstructure:"weeks"`
	DaysPerWeek      int `mapstructure:"days_per_week"`
	MaxWeeksPerLevel int `mapstructure:"max_weeks_per_level"`
}

// Logging configures the default slog logger.
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers every key so environment overrides apply even
// without a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", "")
	v.SetDefault("catalog.path", "")
	v.SetDefault("plan.minutes_per_day", 0)
	v.SetDefault("plan.weeks", plan.DefaultWeeks)
	v.SetDefault("plan.days_per_week", 0)
	v.SetDefault("plan.max_weeks_per_level", plan.DefaultMaxWeeksPerLevel)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Load reads configuration into v and decodes it. When file is empty the
// standard locations are searched; a missing config file is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "nbplace"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if _, err := ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err.Error())
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Sprintf("invalid log format: %s", c.Logging.Format))
	}
	if c.Plan.MinutesPerDay < 0 {
		errs = append(errs, "plan.minutes_per_day must be >= 0")
	}
	if c.Plan.Weeks < 0 {
		errs = append(errs, "plan.weeks must be >= 0")
	}
	if c.Plan.DaysPerWeek < 0 || c.Plan.DaysPerWeek > plan.MaxDaysPerWeek {
		errs = append(errs, fmt.Sprintf("plan.days_per_week must be between 0 and %d", plan.MaxDaysPerWeek))
	}
	if c.Plan.MaxWeeksPerLevel < 0 {
		errs = append(errs, "plan.max_weeks_per_level must be >= 0")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
