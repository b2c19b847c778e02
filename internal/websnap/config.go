package websnap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bennent-g/websnap/internal/route"
)

// Default configuration values.
const (
	DefaultUILibrary = "elementplus"
	DefaultRouteMode = route.ModeHash
	DefaultDBPath    = "websnap.db"
)

// Config holds the recognized session options.
type Config struct {
	// User identifies whose interactions are recorded. Required to
	// activate capture and persistence; a session without a user refuses
	// every history operation.
	User string `yaml:"user"`

	// MaxHistoryLength caps how many records one element may accumulate
	// per entry. Zero means unlimited.
	MaxHistoryLength int `yaml:"maxHistoryLength"`

	// UILibrary selects the identification strategy variant.
	// Unrecognized names fall back to the native strategy.
	UILibrary string `yaml:"uiLibrary"`

	// RouteMode selects hash- or path-based route resolution.
	RouteMode route.Mode `yaml:"routeMode"`

	// DBPath locates the SQLite history database.
	DBPath string `yaml:"db"`
}

// ApplyDefaults fills unset fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.UILibrary == "" {
		c.UILibrary = DefaultUILibrary
	}
	if c.RouteMode == "" {
		c.RouteMode = DefaultRouteMode
	}
	if c.DBPath == "" {
		c.DBPath = DefaultDBPath
	}
}

// Validate checks field values. Call after ApplyDefaults.
func (c *Config) Validate() error {
	if !c.RouteMode.Valid() {
		return fmt.Errorf("invalid routeMode %q: must be %q or %q", c.RouteMode, route.ModeHash, route.ModePath)
	}
	if c.MaxHistoryLength < 0 {
		return fmt.Errorf("invalid maxHistoryLength %d: must not be negative", c.MaxHistoryLength)
	}
	return nil
}

// LoadConfig reads a YAML config file, applies defaults and validates.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}
