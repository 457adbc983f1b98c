// Package undoconfig supplies the two settings the undo engine reads at
// startup (spec §6): the typing-coalescence granularity and the undo
// stack bound. It is a deliberately small TOML-backed reader, grounded on
// the teacher codebase's loader.TOMLLoader, rather than the full layered
// settings system a general editor needs — nothing in this module's scope
// calls for environment-variable overrides, schema validation, or
// per-project layering.
package undoconfig

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Defaults match §6: "line" granularity, unbounded stack.
const (
	DefaultGranularity     = "line"
	DefaultMaxUndoStackSize = 0
)

// Config holds the raw TOML document.
type Config struct {
	values map[string]any
}

// Load reads path as TOML. A missing file is not an error; it yields an
// empty Config that falls back to defaults for every key.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{values: map[string]any{}}, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a TOML document directly, useful for tests and embedded
// defaults.
func Parse(data []byte) (*Config, error) {
	var values map[string]any
	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &Config{values: values}, nil
}

// GetString implements undo.ConfigReader.
func (c *Config) GetString(key string) (string, bool) {
	v, ok := c.values[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetInt implements undo.ConfigReader.
func (c *Config) GetInt(key string) (int, bool) {
	v, ok := c.values[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int64:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}
