// Package kv is a small persistent key-value store over YAML documents addressed
// by dotted paths.
//
// An App wires the pieces with Uber Fx: a logger, the document registry, and
// optionally an HTTP listener serving the documents. Stopping the App saves
// every document that was opened.
//
//	app := kv.NewApp(
//	    kv.WithLogLevel("info"),
//	    kv.WithDocuments(registry.WithBaseDir("/var/lib/myapp")),
//	)
//	if err := app.Start(); err != nil { ... }
//	defer app.Stop()
//
//	settings, _ := app.Registry().Resolve("settings")
//	previous, _ := settings.Set("window.width", 1280)
package kv
