package registry

// Option defines a function type for configuring a Registry module.
type Option func(*Config)

// WithBaseDir sets the directory documents are stored under.
func WithBaseDir(dir string) Option {
	return func(cfg *Config) {
		cfg.BaseDir = dir
	}
}

// WithExtension sets the extension appended to document names.
func WithExtension(ext string) Option {
	return func(cfg *Config) {
		cfg.Extension = ext
	}
}
