// Package config provides configuration loading and access for the aquarium.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Tank size limits. The smallest tank must still fit the largest legacy sprite box.
const (
	MinTankWidth  = 8
	MinTankHeight = 8
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid config")

// Config holds all aquarium configuration parameters.
type Config struct {
	Tank       TankConfig      `yaml:"tank" toml:"tank"`
	Life       LifeConfig      `yaml:"life" toml:"life"`
	Collision  CollisionConfig `yaml:"collision" toml:"collision"`
	Population []AnimalConfig  `yaml:"population" toml:"population"`
	Demo       DemoConfig      `yaml:"demo" toml:"demo"`
	Telemetry  TelemetryConfig `yaml:"telemetry" toml:"telemetry"`
	Logging    LoggingConfig   `yaml:"logging" toml:"logging"`
	Viewer     ViewerConfig    `yaml:"viewer" toml:"viewer"`
}

// TankConfig holds the grid dimensions.
type TankConfig struct {
	Width     int `yaml:"width" toml:"width"`         // Grid columns
	Height    int `yaml:"height" toml:"height"`       // Grid rows
	Waterline int `yaml:"waterline" toml:"waterline"` // Lowest row index fish may occupy
}

// LifeConfig holds aging and feeding parameters.
type LifeConfig struct {
	MaxAge       int `yaml:"max_age" toml:"max_age"`             // Animals die when age reaches this
	StartingFood int `yaml:"starting_food" toml:"starting_food"` // Food given to new animals
	FeedAmount   int `yaml:"feed_amount" toml:"feed_amount"`     // Food dropped per feeding
	DigestEvery  int `yaml:"digest_every" toml:"digest_every"`   // Ticks between food decrements (0 = never)
}

// CollisionConfig holds crab collision resolution parameters.
type CollisionConfig struct {
	MaxAttempts int `yaml:"max_attempts" toml:"max_attempts"` // Random relocation tries per crab
}

// AnimalConfig describes one animal of the starting population.
type AnimalConfig struct {
	Name    string `yaml:"name" toml:"name"`
	Species string `yaml:"species" toml:"species"` // Species code: fi, sc, mo, cr, oc, sh
	Age     int    `yaml:"age" toml:"age"`
	X       int    `yaml:"x" toml:"x"`
	Y       int    `yaml:"y" toml:"y"`
	FacingH string `yaml:"facing_h" toml:"facing_h"` // left | right
	FacingV string `yaml:"facing_v" toml:"facing_v"` // up | down
}

// DemoConfig holds the scripted demo parameters.
type DemoConfig struct {
	Ticks     int `yaml:"ticks" toml:"ticks"`
	FeedEvery int `yaml:"feed_every" toml:"feed_every"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow            int `yaml:"stats_window" toml:"stats_window"` // Ticks per stats window
	BookmarkHistorySize    int `yaml:"bookmark_history_size" toml:"bookmark_history_size"`
	CollisionStormFailures int `yaml:"collision_storm_failures" toml:"collision_storm_failures"`
}

// LoggingConfig holds slog settings.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`   // debug | info | warn | error
	Format string `yaml:"format" toml:"format"` // json | text
}

// ViewerConfig holds terminal viewer settings.
type ViewerConfig struct {
	TickIntervalMs int  `yaml:"tick_interval_ms" toml:"tick_interval_ms"`
	Sound          bool `yaml:"sound" toml:"sound"`
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML or TOML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := cfg.merge(path, data); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) merge(path string, data []byte) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, c)
	}
	return yaml.Unmarshal(data, c)
}

// Validate checks tank geometry and life parameters.
func (c *Config) Validate() error {
	t := c.Tank
	if t.Width < MinTankWidth {
		return fmt.Errorf("%w: tank.width %d below minimum %d", ErrInvalid, t.Width, MinTankWidth)
	}
	if t.Height < MinTankHeight {
		return fmt.Errorf("%w: tank.height %d below minimum %d", ErrInvalid, t.Height, MinTankHeight)
	}
	if t.Waterline < 0 || t.Waterline >= t.Height-1 {
		return fmt.Errorf("%w: tank.waterline %d outside [0,%d)", ErrInvalid, t.Waterline, t.Height-1)
	}
	if c.Life.MaxAge <= 0 {
		return fmt.Errorf("%w: life.max_age must be positive", ErrInvalid)
	}
	if c.Life.StartingFood <= 0 {
		return fmt.Errorf("%w: life.starting_food must be positive", ErrInvalid)
	}
	if c.Life.DigestEvery < 0 {
		return fmt.Errorf("%w: life.digest_every must not be negative", ErrInvalid)
	}
	if c.Collision.MaxAttempts < 0 {
		return fmt.Errorf("%w: collision.max_attempts must not be negative", ErrInvalid)
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
