package config

import (
	"fmt"
	"log/slog"
)

// Parser defines an interface for parsing configuration data into a target structure.
//
// The path parameter selects a section of the document with dot-separated keys,
// for example "http.api". An empty path selects the entire document.
type Parser interface {
	Parse(data []byte, target any, path string) error
}

// DataFetcher defines an interface for reading configuration data.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// Validator defines an interface for validating configuration structures.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in configuration structures.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Provider returns a function that reads, parses, sets defaults, and validates configuration data.
func Provider[T any](target *T, path string) func(Parser, DataFetcher) (*T, error) {
	return func(parser Parser, dataSourcer DataFetcher) (*T, error) {
		data, err := dataSourcer.Fetch()
		if err != nil {
			return nil, fmt.Errorf("reading data error: %w", err)
		}

		err = parser.Parse(data, target, path)
		if err != nil {
			return nil, fmt.Errorf("parsing section %q: %w", path, err)
		}

		targetDefaulter, isDefaulter := any(target).(Defaulter)
		if isDefaulter {
			changed := targetDefaulter.SetDefaults()
			if changed {
				slog.Debug("defaults applied", slog.String("section", path))
			}
		}

		targetValidatable, isValidatable := any(target).(Validator)
		if isValidatable {
			err := targetValidatable.Validate()
			if err != nil {
				return nil, fmt.Errorf("validating section %q: %w", path, err)
			}
		}

		return target, nil
	}
}

// Optional wraps a Provider so that a missing section leaves target at its defaults.
// isMissing reports whether a parse error means the section is absent.
func Optional[T any](target *T, path string, isMissing func(error) bool) func(Parser, DataFetcher) (*T, error) {
	provide := Provider(target, path)

	return func(parser Parser, dataSourcer DataFetcher) (*T, error) {
		result, err := provide(parser, dataSourcer)
		if err == nil || !isMissing(err) {
			return result, err
		}

		targetDefaulter, isDefaulter := any(target).(Defaulter)
		if isDefaulter {
			targetDefaulter.SetDefaults()
		}

		return target, nil
	}
}
