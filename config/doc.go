// Package config loads application settings from structured files.
//
// The package uses an interface-based design with four extension points:
//   - Parser: deserializes raw data into config struct, with section navigation
//   - DataFetcher: retrieves raw config data (file, env, etc.)
//   - Validator: validates config after parsing
//   - Defaulter: applies default values before validation
//
// # Sections
//
// Provider accepts a section path using the same dotted syntax as documents:
//
//	"storage"                   -> config["storage"]
//	"http.api"                  -> config["http"]["api"]
//	""                          -> entire document
//
// # Example
//
//	provider := config.Provider(&registry.Config{}, "storage")
//	fetcher, err := filefetcher.NewFetcher("hjarta-kv.yaml")()
//	cfg, err := provider(yamlparser.NewParser(), fetcher)
package config
