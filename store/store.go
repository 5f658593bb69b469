// Package store defines the durable document store the document adapters persist through.
package store

import "errors"

// ErrCorrupt is returned when a stored document exists but cannot be decoded.
var ErrCorrupt = errors.New("document corrupt")

// Store reads and writes whole documents identified by a storage location.
type Store interface {
	// Exists reports whether a document is stored at location.
	Exists(location string) bool
	// Read loads and decodes the document at location.
	Read(location string) (map[string]any, error)
	// Write encodes doc and replaces the document at location.
	Write(location string, doc map[string]any) error
}

// Codec converts documents to and from their on-disk representation.
type Codec interface {
	Extension() string
	Marshal(doc map[string]any) ([]byte, error)
	Unmarshal(data []byte) (map[string]any, error)
}
