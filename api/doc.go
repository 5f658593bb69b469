// Package api exposes the documents of a registry.Registry over HTTP.
//
// Routes:
//
//	GET    /documents/{name}          top-level keys and the whole document
//	GET    /documents/{name}/{path}   value at a dotted path, 404 when absent
//	PUT    /documents/{name}/{path}   store the JSON or YAML request body at path
//	DELETE /documents/{name}/{path}   remove the value at path
//	POST   /documents/{name}/save     save one document
//	POST   /save                      save every open document
//
// Writes only change the in-memory documents. They reach disk on an explicit
// save or when the application stops.
//
// Requests are serialised with a single mutex because documents and the
// registry are not safe for concurrent use.
package api
