// Package config loads timekeeper settings: a YAML config file under
// the user config directory, overridable per-key with TIMEKEEPER_*
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the resolved settings.
type Config struct {
	// DataDir holds the timer record, the task database, and the
	// session journal. It must be the same for every process that
	// should observe one shared timer.
	DataDir string
	// PollInterval is the synchronization fallback poll period.
	PollInterval time.Duration
	// DefaultRate is the hourly rate applied to new billable tasks.
	DefaultRate float64
	// Currency is the display currency symbol.
	Currency string
}

// TaskDBPath is the task database location under the data dir.
func (c *Config) TaskDBPath() string {
	return filepath.Join(c.DataDir, "tasks.db")
}

// JournalDir is the session journal location under the data dir.
func (c *Config) JournalDir() string {
	return filepath.Join(c.DataDir, "journal")
}

// Load reads config.yaml if present and applies env overrides. A
// missing config file is not an error; defaults apply.
func Load() (*Config, error) {
	v := viper.New()

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	v.SetDefault("data_dir", filepath.Join(home, ".timekeeper"))
	v.SetDefault("poll_interval", "1s")
	v.SetDefault("default_rate", 0.0)
	v.SetDefault("currency", "$")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if confDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(confDir, "timekeeper"))
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("TIMEKEEPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	interval := v.GetDuration("poll_interval")
	if interval <= 0 {
		interval = time.Second
	}

	return &Config{
		DataDir:      v.GetString("data_dir"),
		PollInterval: interval,
		DefaultRate:  v.GetFloat64("default_rate"),
		Currency:     v.GetString("currency"),
	}, nil
}
