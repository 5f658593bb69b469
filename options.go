package kv

import (
	"io"

	"github.com/0xalexb/hjarta-kv/api"
	"github.com/0xalexb/hjarta-kv/listener"
	"github.com/0xalexb/hjarta-kv/registry"

	"go.uber.org/fx"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules   []fx.Option
	Registry  []registry.Option
	Documents bool
	LogLevel  string
	LogFormat string
	LogOutput io.Writer
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithDocuments enables the document registry.
// Without registry options, registry.Config must be supplied to DI by another module.
func WithDocuments(registryOpts ...registry.Option) Option {
	return func(opts *Options) {
		opts.Documents = true
		opts.Registry = append(opts.Registry, registryOpts...)
	}
}

// WithHTTPListener serves the documents on a named HTTP listener.
// The name is used as both the Fx module name and the DI named tag for http.Handler and listener.Config.
// It enables the document registry.
func WithHTTPListener(name string, opts ...listener.Option) Option {
	return func(o *Options) {
		o.Documents = true
		o.Modules = append(o.Modules, api.NewModule(name), listener.NewModule(name, opts...))
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat selects the log format: "json" (default), "text" or "console".
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}

// WithLogOutput sets where logs are written. Defaults to os.Stderr.
func WithLogOutput(w io.Writer) Option {
	return func(opts *Options) {
		opts.LogOutput = w
	}
}
