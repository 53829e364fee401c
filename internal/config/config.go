// Package config loads the optional workspace configuration file
// (jupypod.yaml, jupypod.yml or jupypod.toml).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	defaultAdapter  = "fs"
	defaultStore    = ".jupypod"
	defaultKey      = "jupypod-notebook"
	defaultLevel    = "info"
	defaultPattern  = "**/*.ipynb"
	defaultDebounce = 50 * time.Millisecond
)

// FileNames are the configuration files looked up in a workspace root, in order.
var FileNames = []string{"jupypod.yaml", "jupypod.yml", "jupypod.toml"}

var knownAdapters = []string{"fs", "bolt", "memory"}

// Config is the workspace configuration.
type Config struct {
	Adapter  string      `yaml:"adapter" toml:"adapter"`
	Store    string      `yaml:"store" toml:"store"`
	Key      string      `yaml:"key" toml:"key"`
	LogLevel string      `yaml:"log_level" toml:"log_level"`
	Watch    WatchConfig `yaml:"watch" toml:"watch"`
}

// WatchConfig configures `jupypod watch`.
type WatchConfig struct {
	Pattern  string `yaml:"pattern" toml:"pattern"`
	Debounce string `yaml:"debounce" toml:"debounce"` // e.g. "50ms"
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Adapter:  defaultAdapter,
		Store:    defaultStore,
		Key:      defaultKey,
		LogLevel: defaultLevel,
		Watch: WatchConfig{
			Pattern:  defaultPattern,
			Debounce: defaultDebounce.String(),
		},
	}
}

// Discover returns the first configuration file present in dir.
func Discover(dir string) (string, bool) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Load reads the file at path on top of Default. The format follows the
// extension: .yaml/.yml or .toml.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config format: %s", path)
	}
	if err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDir loads the configuration discovered in dir, or Default when there is none.
func LoadDir(dir string) (Config, string, error) {
	path, ok := Discover(dir)
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

func (c *Config) normalize() {
	d := Default()
	c.Adapter = strings.ToLower(strings.TrimSpace(c.Adapter))
	if c.Adapter == "" {
		c.Adapter = d.Adapter
	}
	if strings.TrimSpace(c.Store) == "" {
		c.Store = d.Store
	}
	if strings.TrimSpace(c.Key) == "" {
		c.Key = d.Key
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = d.LogLevel
	}
	if strings.TrimSpace(c.Watch.Pattern) == "" {
		c.Watch.Pattern = d.Watch.Pattern
	}
	if strings.TrimSpace(c.Watch.Debounce) == "" {
		c.Watch.Debounce = d.Watch.Debounce
	}
}

// Validate reports configuration values that cannot be used.
func (c Config) Validate() error {
	var errs []error
	known := false
	for _, a := range knownAdapters {
		if c.Adapter == a {
			known = true
		}
	}
	if !known {
		errs = append(errs, fmt.Errorf("unknown adapter %q (want one of %s)", c.Adapter, strings.Join(knownAdapters, ", ")))
	}
	if _, err := c.parseLevel(); err != nil {
		errs = append(errs, err)
	}
	if d, err := time.ParseDuration(c.Watch.Debounce); err != nil || d < 0 {
		errs = append(errs, fmt.Errorf("invalid watch.debounce %q", c.Watch.Debounce))
	}
	return errors.Join(errs...)
}

// SlogLevel returns the configured log level.
func (c Config) SlogLevel() slog.Level {
	level, err := c.parseLevel()
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c Config) parseLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return level, nil
}

// DebounceDuration returns the watch debounce window.
func (c Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d < 0 {
		return defaultDebounce
	}
	return d
}

// StorePath resolves the store location against the workspace root.
func (c Config) StorePath(root string) string {
	if filepath.IsAbs(c.Store) || root == "" {
		return c.Store
	}
	return filepath.Join(root, c.Store)
}
