// Package config provides configuration management for tldr using Viper.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// AppName is the application name used for config and cache directory naming.
const AppName = "tealdeer"

// DefaultPagesURL is the archive of the community page collection.
const DefaultPagesURL = "https://github.com/tldr-pages/tldr/archive/master.tar.gz"

// DefaultMaxAgeDays is the cache age after which an update is suggested.
const DefaultMaxAgeDays = 30

// Config represents the top-level configuration structure.
type Config struct {
	Display DisplayConfig `mapstructure:"display" toml:"display"`
	Updates UpdatesConfig `mapstructure:"updates" toml:"updates"`
	Pages   PagesConfig   `mapstructure:"pages" toml:"pages"`
}

// DisplayConfig controls how pages are rendered.
type DisplayConfig struct {
	// Compact suppresses blank lines between snippets.
	Compact bool `mapstructure:"compact" toml:"compact"`

	// Raw prints page markdown without styling.
	Raw bool `mapstructure:"raw" toml:"raw"`
}

// UpdatesConfig controls cache freshness behavior.
type UpdatesConfig struct {
	// MaxAgeDays is the cache age in days beyond which a warning
	// suggesting `tldr --update` is logged.
	MaxAgeDays int `mapstructure:"max_age_days" toml:"max_age_days"`
}

// PagesConfig controls where the page archive is fetched from.
type PagesConfig struct {
	URL string `mapstructure:"url" toml:"url"`
}

// Default returns the built-in configuration values.
func Default() Config {
	return Config{
		Updates: UpdatesConfig{MaxAgeDays: DefaultMaxAgeDays},
		Pages:   PagesConfig{URL: DefaultPagesURL},
	}
}

// Dir returns the directory searched for the config file.
// The env override takes precedence over the XDG config home.
func Dir(env Env) string {
	if env.ConfigDir != "" {
		return env.ConfigDir
	}
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init(env Env) {
	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.AddConfigPath(Dir(env))

	// Defaults
	viper.SetDefault("updates.max_age_days", DefaultMaxAgeDays)
	viper.SetDefault("pages.url", DefaultPagesURL)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default location.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		// If config file not found...
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If user specified a path, this is an error
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			// Real read error (parsing, permissions, etc)
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
