// Package yaml encodes documents as YAML files.
//
// This package uses github.com/goccy/go-yaml. Output is deterministic: mapping keys
// are written in sorted order, so saving an unchanged document twice produces
// identical bytes.
//
// Decoding accepts any YAML whose top-level value is a mapping. An empty file or a
// document containing only null decodes to an empty mapping. Nested mappings are
// always returned as map[string]any.
package yaml
