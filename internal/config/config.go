// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all rolodex configuration.
type Config struct {
	Book Book `yaml:"book"`
	UI   UI   `yaml:"ui"`
	Log  Log  `yaml:"log"`
}

// Book holds address book storage settings.
type Book struct {
	Path      string `yaml:"path"`       // Snapshot file location
	Format    string `yaml:"format"`     // "json" | "gob"
	BatchSize int    `yaml:"batch_size"` // Page size for listings
}

// UI holds interactive surface settings.
type UI struct {
	Plain bool `yaml:"plain"` // Force the line-mode menu even on a TTY
}

// Log holds logging settings.
type Log struct {
	Level string `yaml:"level"` // "debug" | "info" | "warn" | "error"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Book: Book{
			Path:      ".rolodex/contacts.json",
			Format:    "json",
			BatchSize: 10,
		},
		UI: UI{
			Plain: false,
		},
		Log: Log{
			Level: "warn",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Book.Path == "" {
		return errors.New("config: book.path cannot be empty")
	}
	switch c.Book.Format {
	case "json", "gob":
		// valid
	default:
		return fmt.Errorf("config: book.format must be \"json\" or \"gob\", got %q", c.Book.Format)
	}
	if c.Book.BatchSize < 1 {
		return fmt.Errorf("config: book.batch_size must be positive, got %d", c.Book.BatchSize)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("config: log.level must be debug, info, warn, or error, got %q", c.Log.Level)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: ROLODEX_BOOK, ROLODEX_FORMAT, ROLODEX_BATCH_SIZE,
// ROLODEX_PLAIN, ROLODEX_LOG_LEVEL.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("ROLODEX_BOOK"); v != "" {
		c.Book.Path = v
	}
	if v := os.Getenv("ROLODEX_FORMAT"); v != "" {
		c.Book.Format = v
	}
	if v := os.Getenv("ROLODEX_BATCH_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid ROLODEX_BATCH_SIZE %q: %w", v, err)
		}
		c.Book.BatchSize = n
	}
	if v := os.Getenv("ROLODEX_PLAIN"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid ROLODEX_PLAIN %q: %w", v, err)
		}
		c.UI.Plain = b
	}
	if v := os.Getenv("ROLODEX_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Book *rawBook `yaml:"book"`
	UI   *rawUI   `yaml:"ui"`
	Log  *rawLog  `yaml:"log"`
}

type rawBook struct {
	Path      *string `yaml:"path"`
	Format    *string `yaml:"format"`
	BatchSize *int    `yaml:"batch_size"`
}

type rawUI struct {
	Plain *bool `yaml:"plain"`
}

type rawLog struct {
	Level *string `yaml:"level"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Book != nil {
		if layer.Book.Path != nil {
			c.Book.Path = *layer.Book.Path
		}
		if layer.Book.Format != nil {
			c.Book.Format = *layer.Book.Format
		}
		if layer.Book.BatchSize != nil {
			c.Book.BatchSize = *layer.Book.BatchSize
		}
	}
	if layer.UI != nil {
		if layer.UI.Plain != nil {
			c.UI.Plain = *layer.UI.Plain
		}
	}
	if layer.Log != nil {
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
	}
}
