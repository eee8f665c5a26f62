// Package api exposes the application over JSON/HTTP. Handlers decode and
// validate requests, call the stores and services, and map their errors to
// status codes and safe messages with HandleAPIError. NewRouter assembles
// the chi router with all routes and middleware.
package api
