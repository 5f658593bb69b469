package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/0xalexb/hjarta-kv/store"

	"github.com/google/renameio"
)

const (
	dirPerm  fs.FileMode = 0o755
	filePerm fs.FileMode = 0o600
)

// ErrPathIsDirectory is returned when a location points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// Store implements store.Store on the local filesystem.
type Store struct {
	codec store.Codec
}

// NewStore creates a filesystem store encoding documents with codec.
func NewStore(codec store.Codec) *Store {
	return &Store{codec: codec}
}

// Extension returns the extension of the configured codec.
func (s *Store) Extension() string {
	return s.codec.Extension()
}

// Exists reports whether a file is present at location.
func (s *Store) Exists(location string) bool {
	_, err := os.Stat(filepath.Clean(location))

	return !errors.Is(err, fs.ErrNotExist)
}

// Read loads and decodes the file at location.
func (s *Store) Read(location string) (map[string]any, error) {
	cleanPath := filepath.Clean(location)

	stat, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("stat file %q: %w", cleanPath, err)
	}

	if stat.IsDir() {
		return nil, fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
	}

	data, err := os.ReadFile(cleanPath) // #nosec G304 -- location is resolved by the registry
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", cleanPath, err)
	}

	doc, err := s.codec.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", store.ErrCorrupt, cleanPath, err)
	}

	return doc, nil
}

// Write encodes doc and atomically replaces the file at location.
func (s *Store) Write(location string, doc map[string]any) error {
	cleanPath := filepath.Clean(location)

	data, err := s.codec.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", cleanPath, err)
	}

	err = os.MkdirAll(filepath.Dir(cleanPath), dirPerm)
	if err != nil {
		return fmt.Errorf("creating directory for %q: %w", cleanPath, err)
	}

	err = renameio.WriteFile(cleanPath, data, filePerm)
	if err != nil {
		return fmt.Errorf("writing file %q: %w", cleanPath, err)
	}

	return nil
}
