// Package config handles tmap configuration: a YAML file, a .env file and
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/tmap/config.yml.
type Config struct {
	Dataset     string  `yaml:"dataset,omitempty"`   // Local path or http(s) URL
	Delimiter   string  `yaml:"delimiter,omitempty"` // Single character
	Port        int     `yaml:"port,omitempty"`
	LogLevel    string  `yaml:"log_level,omitempty"` // debug, info, warn, error
	SearchRate  float64 `yaml:"search_rate,omitempty"`
	SearchBurst int     `yaml:"search_burst,omitempty"`
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "tmap"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"

	DefaultDataset     = "toembed.csv"
	DefaultDelimiter   = ";"
	DefaultPort        = 8080
	DefaultLogLevel    = "info"
	DefaultSearchRate  = 20.0
	DefaultSearchBurst = 40
)

// Environment variables that override the config file.
const (
	EnvDataset  = "TMAP_DATASET"
	EnvPort     = "TMAP_PORT"
	EnvLogLevel = "TMAP_LOG_LEVEL"
)

// configCache caches the loaded config.
var configCache *Config

// Default returns a config with every field at its default.
func Default() *Config {
	return &Config{
		Dataset:     DefaultDataset,
		Delimiter:   DefaultDelimiter,
		Port:        DefaultPort,
		LogLevel:    DefaultLogLevel,
		SearchRate:  DefaultSearchRate,
		SearchBurst: DefaultSearchBurst,
	}
}

// Path returns the path to the config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/tmap/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load reads the config at path (or Path() when empty), fills defaults and
// applies environment overrides. A missing file is not an error.
// The result is cached until Reset.
func Load(path string) (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	if path == "" {
		path = Path()
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configCache = cfg
	return cfg, nil
}

// Reset clears the cached config.
// Useful for testing.
func Reset() {
	configCache = nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (default ".env")
// into the environment without overriding existing variables. Missing
// files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// applyEnv overrides fields from TMAP_* environment variables.
func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDataset); v != "" {
		c.Dataset = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		c.Port = port
	}
	return nil
}

// fillDefaults replaces zero values left by a sparse YAML file.
func (c *Config) fillDefaults() {
	d := Default()
	if c.Dataset == "" {
		c.Dataset = d.Dataset
	}
	if c.Delimiter == "" {
		c.Delimiter = d.Delimiter
	}
	if c.Port == 0 {
		c.Port = d.Port
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.SearchRate == 0 {
		c.SearchRate = d.SearchRate
	}
	if c.SearchBurst == 0 {
		c.SearchBurst = d.SearchBurst
	}
}

// Validate checks field values.
func (c *Config) Validate() error {
	if _, err := c.DelimiterRune(); err != nil {
		return err
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be 1-65535", c.Port)
	}
	if c.SearchRate < 0 || c.SearchBurst < 0 {
		return fmt.Errorf("search_rate and search_burst must not be negative")
	}
	return nil
}

// DelimiterRune returns the field delimiter as a rune.
func (c *Config) DelimiterRune() (rune, error) {
	r, size := utf8.DecodeRuneInString(c.Delimiter)
	if r == utf8.RuneError || size != len(c.Delimiter) {
		return 0, fmt.Errorf("invalid delimiter %q: must be a single character", c.Delimiter)
	}
	return r, nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
