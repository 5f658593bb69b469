// Package file provides a file-based DataFetcher implementation for the config package.
//
// The file is checked when the fetcher is constructed and read again on every
// Fetch, so a long-running process can pick up edits by fetching again.
// Environment references such as ${HOME} or $XDG_STATE_HOME in the file are
// expanded before the data is returned.
//
// Usage:
//
//	fetcher, err := file.NewFetcher("/etc/hjarta-kv.yaml")()
//	if err != nil {
//	    // Handle error: file not found, permission denied, path is directory, etc.
//	}
//	data, err := fetcher.Fetch()
//
// Error Handling:
//   - Construction returns error if the file is missing or the path is a directory
//   - Errors include the filepath for easier debugging
//   - Use errors.Is(err, file.ErrPathIsDirectory) to check for directory errors
package file
