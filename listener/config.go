// Package listener serves an http.Handler as an Fx-managed HTTP listener.
package listener

import (
	"errors"

	"github.com/0xalexb/hjarta-kv/listener/middleware"
)

// DefaultAddress is the default address for the HTTP listener.
const DefaultAddress = "127.0.0.1:8080"

// ErrEmptyAddress is returned when the address is empty.
var ErrEmptyAddress = errors.New("address must not be empty")

// ErrListenFailed is returned when the server fails to listen on the configured address.
var ErrListenFailed = errors.New("failed to listen")

// ErrShutdownFailed is returned when the server fails to shut down gracefully.
var ErrShutdownFailed = errors.New("shutdown failed")

// ErrEmptyName is returned when the listener name is empty.
var ErrEmptyName = errors.New("listener name must not be empty")

// ErrNilHandler is returned when a nil http.Handler is provided.
var ErrNilHandler = errors.New("handler must not be nil")

// ErrNegativeBodyLimit is returned when MaxBodyBytes is negative.
var ErrNegativeBodyLimit = errors.New("max body bytes must not be negative")

// ErrNegativeRateLimit is returned when RateLimit or Burst is negative.
var ErrNegativeRateLimit = errors.New("rate limit and burst must not be negative")

// Config holds the configuration for an HTTP listener.
type Config struct {
	Address      string  `yaml:"address"`
	MaxBodyBytes int64   `yaml:"max_body_bytes"`
	RateLimit    float64 `yaml:"rate_limit"` // requests per second across all clients; 0 disables
	Burst        int     `yaml:"burst"`
}

// SetDefaults sets default values for the Config.
func (c *Config) SetDefaults() bool {
	changed := false

	if c.Address == "" {
		c.Address = DefaultAddress
		changed = true
	}

	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = middleware.DefaultMaxRequestSizeBytes
		changed = true
	}

	return changed
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c.Address == "" {
		return ErrEmptyAddress
	}

	if c.MaxBodyBytes < 0 {
		return ErrNegativeBodyLimit
	}

	if c.RateLimit < 0 || c.Burst < 0 {
		return ErrNegativeRateLimit
	}

	return nil
}
