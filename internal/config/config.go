package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config keeps runtime settings for the planner process.
type Config struct {
	DatabasePath string `mapstructure:"database_path"`
	Timezone     string `mapstructure:"timezone"`
	RolloverTime string `mapstructure:"rollover_time"`
	Debug        bool   `mapstructure:"debug"`
}

const (
	DefaultDatabasePath = "weekday_planner.db"
	DefaultRolloverTime = "00:05"
)

// Load reads configuration from PLANNER_* environment variables and an
// optional config file, with sane defaults.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PLANNER")
	v.AutomaticEnv()

	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("timezone", "Local")
	v.SetDefault("rollover_time", DefaultRolloverTime)
	v.SetDefault("debug", false)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Location resolves the configured timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
