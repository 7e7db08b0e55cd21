// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides type-safe
// access to settings needed by the generation client, the HTTP bridge and the
// development backend, resolved once at startup and never mutated afterwards.
package config
