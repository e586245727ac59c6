// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides type-safe
// access to the settings of the server, the task dispatcher and the optional
// fault database while keeping configuration details separate from them.
package config
