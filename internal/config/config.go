// Package config loads Prism application configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// LogConfig controls logger construction.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SessionConfig controls where session state lives.
type SessionConfig struct {
	// Profile names the session row set used in the snapshot database.
	Profile string `mapstructure:"profile"`

	// HistoryKeep bounds how many snapshots Prune retains per profile.
	HistoryKeep int `mapstructure:"history_keep"`
}

// Config is the top-level Prism configuration.
type Config struct {
	// ThemeDir holds user theme yaml files layered over the builtins.
	ThemeDir string `mapstructure:"theme_dir"`

	// StateDir holds the session database and snapshot exports.
	StateDir string `mapstructure:"state_dir"`

	Log     LogConfig     `mapstructure:"log"`
	Session SessionConfig `mapstructure:"session"`
}

// DatabasePath returns the session database location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.StateDir, "prism.db")
}

// Load reads configuration from the config file (if present), environment
// variables with the PRISM prefix, and defaults.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("theme_dir", filepath.Join(configDir(), "themes"))
	v.SetDefault("state_dir", configDir())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("session.profile", "default")
	v.SetDefault("session.history_keep", 50)

	v.SetEnvPrefix("PRISM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func configDir() string {
	if dir := os.Getenv("PRISM_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "prism")
}
