package dotpath

import (
	"errors"
	"fmt"
	"strings"
)

// Separator splits a path into segments.
const Separator = "."

// ErrNilRoot is returned when the root document is nil.
var ErrNilRoot = errors.New("root must be a non-nil map")

// ErrEmptyPath is returned when the path is an empty string.
var ErrEmptyPath = errors.New("path must not be empty")

// ErrNotMapping is returned when an intermediate segment of a read resolves to a value
// that is not a map[string]any.
var ErrNotMapping = errors.New("not a mapping")

// Split returns the segments of path. Empty segments are preserved.
func Split(path string) []string {
	return strings.Split(path, Separator)
}

// Join is the inverse of Split.
func Join(segments []string) string {
	return strings.Join(segments, Separator)
}

// Set stores value at path, creating every missing intermediate map.
// Intermediates that hold a non-map value are replaced by an empty map.
func Set(root map[string]any, path string, value any) error {
	err := check(root, path)
	if err != nil {
		return err
	}

	segments := Split(path)
	current := root

	for _, segment := range segments[:len(segments)-1] {
		next, isMap := current[segment].(map[string]any)
		if !isMap {
			next = make(map[string]any)
			current[segment] = next
		}

		current = next
	}

	current[segments[len(segments)-1]] = value

	return nil
}

// Get returns the value at path, or nil if it is absent.
func Get(root map[string]any, path string) (any, error) {
	value, _, err := Lookup(root, path)

	return value, err
}

// Lookup returns the value at path and whether the final key exists.
// A missing or null intermediate yields found == false. Any other non-map
// intermediate is an ErrNotMapping error naming the traversed prefix.
func Lookup(root map[string]any, path string) (any, bool, error) {
	err := check(root, path)
	if err != nil {
		return nil, false, err
	}

	segments := Split(path)

	parent, ok, err := walk(root, segments)
	if err != nil || !ok {
		return nil, false, err
	}

	value, found := parent[segments[len(segments)-1]]

	return value, found, nil
}

// Delete removes the key at path and returns the value it held.
// It never creates structure: a missing intermediate is a no-op.
func Delete(root map[string]any, path string) (any, bool, error) {
	err := check(root, path)
	if err != nil {
		return nil, false, err
	}

	segments := Split(path)

	parent, ok, err := walk(root, segments)
	if err != nil || !ok {
		return nil, false, err
	}

	last := segments[len(segments)-1]

	previous, found := parent[last]
	if found {
		delete(parent, last)
	}

	return previous, found, nil
}

// walk descends through every segment but the last and returns the map holding the final key.
func walk(root map[string]any, segments []string) (map[string]any, bool, error) {
	current := root

	for idx, segment := range segments[:len(segments)-1] {
		value, exists := current[segment]
		if !exists || value == nil {
			return nil, false, nil
		}

		next, isMap := value.(map[string]any)
		if !isMap {
			return nil, false, fmt.Errorf("%w: %q holds %T, cannot descend into %q",
				ErrNotMapping, Join(segments[:idx+1]), value, segments[idx+1])
		}

		current = next
	}

	return current, true, nil
}

func check(root map[string]any, path string) error {
	if root == nil {
		return ErrNilRoot
	}

	if path == "" {
		return ErrEmptyPath
	}

	return nil
}
