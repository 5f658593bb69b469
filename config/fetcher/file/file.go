package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// ErrPathIsDirectory is returned when the path provided to the Fetcher points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// envReference matches braced environment references such as ${HOME}.
var envReference = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Fetcher implements config.DataFetcher interface for file-based configuration.
type Fetcher struct {
	filepath string
	lookup   func(string) string
}

// NewFetcher returns a constructor function that creates a new file-based Fetcher
// with the specified filepath. This pattern is Fx-friendly, allowing the DI
// container to control when instantiation happens.
// Returns an error if the file does not exist or if the path points to a directory.
func NewFetcher(fpath string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		cleanPath := filepath.Clean(fpath)

		err := checkFile(cleanPath)
		if err != nil {
			return nil, err
		}

		return &Fetcher{
			filepath: cleanPath,
			lookup:   os.Getenv,
		}, nil
	}
}

// Path returns the cleaned path of the configuration file.
func (f *Fetcher) Path() string {
	return f.filepath
}

// Fetch reads the file and expands ${NAME} environment references in its contents.
// Unset variables expand to the empty string. A bare $ is kept as written, so
// values such as "pa$word" survive unchanged.
func (f *Fetcher) Fetch() ([]byte, error) {
	err := checkFile(f.filepath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.filepath) // #nosec G304 -- path is cleaned and validated
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", f.filepath, err)
	}

	return f.expand(data), nil
}

func (f *Fetcher) expand(data []byte) []byte {
	return envReference.ReplaceAllFunc(data, func(reference []byte) []byte {
		name := envReference.FindSubmatch(reference)[1]

		return []byte(f.lookup(string(name)))
	})
}

func checkFile(cleanPath string) error {
	stat, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("stat file %q: %w", cleanPath, err)
	}

	if stat.IsDir() {
		return fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
	}

	return nil
}
