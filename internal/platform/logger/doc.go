// Package logger provides structured logging for the application.
//
// It uses Go's log/slog package with a JSON handler and a configurable level.
// Request-scoped loggers travel in the context: handlers and stores call
// FromContextOrDefault so that trace identifiers attached by middleware show
// up in every line logged while serving a request.
package logger
