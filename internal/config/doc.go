// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional YAML file. Keys are read with
// the FLASHGEN_ prefix, for example FLASHGEN_SERVER_PORT or
// FLASHGEN_FLASHCARDS_PER_SET.
package config
