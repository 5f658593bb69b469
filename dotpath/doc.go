// Package dotpath reads and writes values inside nested map[string]any documents
// using dot-separated paths such as "server.http.port".
//
// The functions are pure: they only touch the map they are given.
//
// # Read and write asymmetry
//
// Get and Lookup never create structure. Every segment except the last must
// resolve to a map[string]any, otherwise ErrNotMapping is returned together with
// the prefix traversed so far. A missing final key is reported as absent, not as
// an error.
//
// Set always succeeds for a valid root and path. Any intermediate segment that is
// missing or does not hold a map[string]any is replaced by a new empty map
// (auto-vivification). This is destructive: writing "a.b" over {"a": 0} yields
// {"a": {"b": ...}}.
//
// Set stores nil as an explicit null. Use Delete to remove a key.
//
// # Segments
//
// Paths are split on every dot, so ".a", "a." and "a..b" contain empty-string
// segments. Empty segments are ordinary keys.
package dotpath
