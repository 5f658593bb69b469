package listener

// Option defines a function type for configuring an HTTP listener.
type Option func(*Config)

// WithAddress sets the address for the HTTP listener.
func WithAddress(addr string) Option {
	return func(cfg *Config) {
		cfg.Address = addr
	}
}

// WithMaxBodyBytes limits the size of request bodies.
func WithMaxBodyBytes(limit int64) Option {
	return func(cfg *Config) {
		cfg.MaxBodyBytes = limit
	}
}

// WithRateLimit admits requestsPerSecond requests across all clients, with bursts up to burst.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(cfg *Config) {
		cfg.RateLimit = requestsPerSecond
		cfg.Burst = burst
	}
}
