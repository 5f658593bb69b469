// Package yaml provides a YAML parser implementation for the config package.
//
// This package uses github.com/goccy/go-yaml for decoding. Sections are selected
// with the dotted paths of package dotpath: the document is decoded into a map,
// the section is looked up, and only that section is decoded into the target.
//
// Usage:
//
//	parser := yaml.NewParser()
//	var cfg registry.Config
//	err := parser.Parse(data, &cfg, "storage")
//
// Path handling:
//   - Empty path "" -> unmarshal entire document
//   - Single key "storage" -> document["storage"]
//   - Nested path "http.api" -> document["http"]["api"]
package yaml
