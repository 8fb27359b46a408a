// Package config manages application configuration from files and environment.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Output formats accepted by the "format" key.
const (
	FormatFull    = "full"
	FormatUnified = "unified"
	FormatStats   = "stats"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
)

// Formats lists every supported output format.
var Formats = []string{FormatFull, FormatUnified, FormatStats, FormatJSON, FormatYAML}

// Config holds the application configuration.
type Config struct {
	Context  int    `mapstructure:"context"`
	Format   string `mapstructure:"format"`
	Color    bool   `mapstructure:"color"`
	MaxLines int    `mapstructure:"max_lines"`
	Pager    bool   `mapstructure:"pager"`
	LogLevel string `mapstructure:"log_level"`
	Watch    struct {
		DebounceMs int `mapstructure:"debounce_ms"`
	} `mapstructure:"watch"`
	Batch struct {
		Concurrency int `mapstructure:"concurrency"`
	} `mapstructure:"batch"`
}

// defaults are applied by Load and restored by ResetConfig.
var defaults = map[string]interface{}{
	"context":           3,
	"format":            FormatFull,
	"color":             true,
	"max_lines":         20000,
	"pager":             true,
	"log_level":         "warning",
	"watch.debounce_ms": 300,
	"batch.concurrency": 4,
}

// Load reads the configuration from ~/.diffkit/config.yaml and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir())

	for k, v := range defaults {
		viper.SetDefault(k, v)
	}

	// DIFFKIT_WATCH_DEBOUNCE_MS overrides watch.debounce_ms
	viper.SetEnvPrefix("DIFFKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file (non-fatal if missing)
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the built-in configuration, ignoring files and environment.
func Default() *Config {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".diffkit"
	}
	return filepath.Join(home, ".diffkit")
}

// Dir returns the directory holding the config file and shell history.
func Dir() string {
	return configDir()
}
