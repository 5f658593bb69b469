// Package registry maps logical document names to a single document.Adapter each.
package registry

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	yamlcodec "github.com/0xalexb/hjarta-kv/codec/yaml"
)

// DefaultBaseDir is the default directory documents are stored under.
const DefaultBaseDir = "data"

// DefaultExtension is appended to document names that do not already carry it.
const DefaultExtension = yamlcodec.Extension

// ErrEmptyBaseDir is returned when the base directory is empty.
var ErrEmptyBaseDir = errors.New("base directory must not be empty")

// ErrInvalidExtension is returned when the extension does not start with a dot.
var ErrInvalidExtension = errors.New("extension must start with a dot")

// Config holds the storage settings of a Registry.
type Config struct {
	BaseDir   string `yaml:"base_dir"`
	Extension string `yaml:"extension"`
}

// SetDefaults sets default values for the Config.
func (c *Config) SetDefaults() bool {
	changed := false

	if c.BaseDir == "" {
		c.BaseDir = DefaultBaseDir
		changed = true
	}

	if c.Extension == "" {
		c.Extension = DefaultExtension
		changed = true
	}

	return changed
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c.BaseDir == "" {
		return ErrEmptyBaseDir
	}

	if !strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidExtension, c.Extension)
	}

	return nil
}

func (c *Config) absolute() error {
	abs, err := filepath.Abs(c.BaseDir)
	if err != nil {
		return fmt.Errorf("resolving base directory %q: %w", c.BaseDir, err)
	}

	c.BaseDir = abs

	return nil
}
