// Package file provides a filesystem implementation of store.Store.
//
// Each document is one file. Writes go through github.com/google/renameio: the
// encoded document is written to a temporary file in the same directory and
// renamed over the target, so readers never observe a partially written file.
//
// Error Handling:
//   - Exists reports false only when the file does not exist; other stat failures
//     surface from Read
//   - Read wraps decode failures with store.ErrCorrupt
//   - Errors include the location for easier debugging
package file
