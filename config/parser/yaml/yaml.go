package yaml

import (
	"errors"
	"fmt"

	"github.com/0xalexb/hjarta-kv/dotpath"

	"github.com/goccy/go-yaml"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrPathNotFound is returned when the specified path is not found in the YAML document.
var ErrPathNotFound = errors.New("path not found")

// Parser implements config.Parser interface for YAML data.
type Parser struct{}

// NewParser creates a new YAML parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses YAML data and unmarshals the section at path into the target.
// Empty path parses the entire document.
func (p *Parser) Parse(data []byte, target any, path string) error {
	if len(data) == 0 {
		return ErrEmptyData
	}

	if path == "" {
		err := yaml.Unmarshal(data, target)
		if err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil
	}

	var doc map[string]any

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}

	if doc == nil {
		return fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}

	section, found, err := dotpath.Lookup(doc, path)
	if err != nil {
		return fmt.Errorf("reading path %q: %w", path, err)
	}

	if !found {
		return fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}

	encoded, err := yaml.Marshal(section)
	if err != nil {
		return fmt.Errorf("re-encoding path %q: %w", path, err)
	}

	err = yaml.Unmarshal(encoded, target)
	if err != nil {
		return fmt.Errorf("unmarshal path %q: %w", path, err)
	}

	return nil
}

// IsPathNotFound reports whether err means the requested section is absent.
func IsPathNotFound(err error) bool {
	return errors.Is(err, ErrPathNotFound)
}
