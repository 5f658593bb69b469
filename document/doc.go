// Package document holds the in-memory copy of one stored document and keeps it in
// sync with a store.Store.
//
// An Adapter loads its document when it is created. A missing document starts out
// empty. A document that cannot be read or decoded leaves the adapter unloaded:
// every Get, Set, Delete and Save then fails with ErrNotLoaded until a later Load
// succeeds.
//
// Save is best-effort. Write failures are logged and swallowed so periodic saves
// never crash the caller.
//
// Adapters are not safe for concurrent use.
package document
