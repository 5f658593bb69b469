package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/0xalexb/hjarta-kv/document"
	"github.com/0xalexb/hjarta-kv/store"

	"go.uber.org/multierr"
)

// ErrEmptyName is returned when a document name is empty.
var ErrEmptyName = errors.New("document name must not be empty")

// ErrInvalidName is returned when a document name would resolve outside the base directory.
var ErrInvalidName = errors.New("document name must be a relative path inside the base directory")

// Registry creates one document.Adapter per name and keeps it for its lifetime.
//
// Adapters are cached by the name passed to Resolve, not by the resolved location:
// "settings" and "settings.yaml" resolve to the same file but get two independent
// adapters, and the last one saved wins.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	config   Config
	store    store.Store
	logger   *slog.Logger
	adapters map[string]*document.Adapter
	order    []string
}

// extensioner is implemented by stores that know the file extension of their encoding.
type extensioner interface {
	Extension() string
}

// New creates a Registry. Defaults are applied to cfg and BaseDir is made absolute.
// An empty Extension is taken from st when it reports one, and DefaultExtension otherwise.
func New(cfg Config, st store.Store, logger *slog.Logger) (*Registry, error) {
	if named, ok := st.(extensioner); ok && cfg.Extension == "" {
		cfg.Extension = named.Extension()
	}

	cfg.SetDefaults()

	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	err = cfg.absolute()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Registry{
		config:   cfg,
		store:    st,
		logger:   logger,
		adapters: make(map[string]*document.Adapter),
		order:    nil,
	}, nil
}

// Config returns the effective configuration.
func (r *Registry) Config() Config {
	return r.config
}

// Location returns the storage location for name.
func (r *Registry) Location(name string) string {
	location := filepath.Join(r.config.BaseDir, name)
	if !strings.HasSuffix(location, r.config.Extension) {
		location += r.config.Extension
	}

	return location
}

// Resolve returns the adapter cached under name, creating and loading it on first use.
// Absolute names and names escaping the base directory ("../x") are rejected with ErrInvalidName.
func (r *Registry) Resolve(name string) (*document.Adapter, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	if !filepath.IsLocal(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	adapter, cached := r.adapters[name]
	if cached {
		return adapter, nil
	}

	location := r.Location(name)
	adapter = document.New(location, r.store, document.WithLogger(r.logger.With("document", name)))

	r.adapters[name] = adapter
	r.order = append(r.order, name)

	r.logger.Debug("document opened", "document", name, "location", location, "loaded", adapter.Loaded())

	return adapter, nil
}

// Discard drops the adapter cached under name without saving it.
// It reports whether an adapter was cached.
func (r *Registry) Discard(name string) bool {
	if _, cached := r.adapters[name]; !cached {
		return false
	}

	delete(r.adapters, name)
	r.order = slices.DeleteFunc(r.order, func(cachedName string) bool { return cachedName == name })

	r.logger.Debug("document discarded", "document", name)

	return true
}

// Names returns the cached document names in creation order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// SaveAll saves every adapter in creation order.
// Write failures are logged by the adapters; the returned error only combines
// the adapters that could not be saved because they are not loaded.
func (r *Registry) SaveAll() error {
	var errs error

	for _, name := range r.order {
		err := r.adapters[name].Save()
		if err != nil {
			r.logger.Warn("document skipped on save", "document", name, "error", err)
			errs = multierr.Append(errs, err)
		}
	}

	return errs
}
