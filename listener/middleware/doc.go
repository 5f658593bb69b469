// Package middleware wraps the HTTP handlers served by package listener.
//
// Chain applies the stack used for every listener: request IDs, access logging,
// panic recovery, an optional global rate limit and a request body limit.
package middleware
