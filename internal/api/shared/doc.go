// Package shared holds the request and response helpers used by both the
// API handlers and their middleware.
package shared
