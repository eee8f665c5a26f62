// Package middleware provides the HTTP middleware specific to this API:
// trace IDs with request-scoped loggers, and bearer token authentication.
package middleware
