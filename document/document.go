package document

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/0xalexb/hjarta-kv/dotpath"
	"github.com/0xalexb/hjarta-kv/store"
)

// ErrNotLoaded is returned by operations on an adapter whose document failed to load.
var ErrNotLoaded = errors.New("document not loaded")

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger used to report load and save failures.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// Adapter owns the in-memory copy of the document stored at one location.
type Adapter struct {
	location string
	store    store.Store
	logger   *slog.Logger
	data     map[string]any
}

// New creates an adapter for location and loads it immediately.
// A failed load is logged; check Loaded to detect it.
func New(location string, st store.Store, opts ...Option) *Adapter {
	adapter := &Adapter{
		location: location,
		store:    st,
		logger:   slog.Default(),
		data:     nil,
	}

	for _, apply := range opts {
		apply(adapter)
	}

	_ = adapter.Load()

	return adapter
}

// Location returns the storage location of the document.
func (a *Adapter) Location() string {
	return a.location
}

// Loaded reports whether the adapter holds a usable document.
func (a *Adapter) Loaded() bool {
	return a.data != nil
}

// Load replaces the in-memory document with the stored one.
// A missing document loads as empty. On failure the adapter becomes unloaded.
func (a *Adapter) Load() error {
	if !a.store.Exists(a.location) {
		a.data = make(map[string]any)

		return nil
	}

	doc, err := a.store.Read(a.location)
	if err != nil {
		a.logger.Error("failed to load document", "location", a.location, "error", err)
		a.data = nil

		return fmt.Errorf("loading %q: %w", a.location, err)
	}

	if doc == nil {
		doc = make(map[string]any)
	}

	a.data = doc
	a.logger.Debug("document loaded", "location", a.location, "keys", len(doc))

	return nil
}

// Save writes the document to the store.
// Only ErrNotLoaded is returned; write failures are logged.
func (a *Adapter) Save() error {
	if a.data == nil {
		return fmt.Errorf("saving %q: %w", a.location, ErrNotLoaded)
	}

	err := a.store.Write(a.location, a.data)
	if err != nil {
		a.logger.Error("failed to save document", "location", a.location, "error", err)

		return nil
	}

	a.logger.Debug("document saved", "location", a.location)

	return nil
}

// Get returns the value at path, or nil when it is absent.
func (a *Adapter) Get(path string) (any, error) {
	value, _, err := a.Lookup(path)

	return value, err
}

// Lookup returns the value at path and whether it exists.
func (a *Adapter) Lookup(path string) (any, bool, error) {
	if a.data == nil {
		return nil, false, ErrNotLoaded
	}

	value, found, err := dotpath.Lookup(a.data, path)
	if err != nil {
		return nil, false, fmt.Errorf("get %q: %w", path, err)
	}

	return value, found, nil
}

// Set stores value at path and returns the value previously found there.
// Missing or non-mapping intermediates are replaced by empty mappings.
// A replaced non-mapping intermediate is not reported as the previous value:
// previous is nil whenever path did not resolve before the write.
// The read and the write are not atomic with respect to other callers.
func (a *Adapter) Set(path string, value any) (any, error) {
	if a.data == nil {
		return nil, ErrNotLoaded
	}

	previous, err := a.Get(path)

	switch {
	case errors.Is(err, dotpath.ErrNotMapping):
		previous = nil
	case err != nil:
		return nil, err
	}

	err = dotpath.Set(a.data, path, value)
	if err != nil {
		return nil, fmt.Errorf("set %q: %w", path, err)
	}

	return previous, nil
}

// Delete removes the value at path and returns it.
func (a *Adapter) Delete(path string) (any, error) {
	if a.data == nil {
		return nil, ErrNotLoaded
	}

	previous, _, err := dotpath.Delete(a.data, path)
	if err != nil {
		return nil, fmt.Errorf("delete %q: %w", path, err)
	}

	return previous, nil
}

// Keys returns the top-level keys in sorted order.
func (a *Adapter) Keys() ([]string, error) {
	if a.data == nil {
		return nil, ErrNotLoaded
	}

	return slices.Sorted(maps.Keys(a.data)), nil
}

// Values returns the top-level values in the order of Keys.
func (a *Adapter) Values() ([]any, error) {
	keys, err := a.Keys()
	if err != nil {
		return nil, err
	}

	values := make([]any, 0, len(keys))
	for _, key := range keys {
		values = append(values, a.data[key])
	}

	return values, nil
}

// Internal returns the live top-level mapping, or nil when unloaded.
//
// Changes made through the returned map bypass path validation and are saved
// like any other change. Use it for bulk edits only.
func (a *Adapter) Internal() map[string]any {
	return a.data
}
