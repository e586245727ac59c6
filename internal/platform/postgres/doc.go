// Package postgres provides the PostgreSQL implementation of store.FaultStore
// together with the embedded goose migrations that create its schema.
package postgres
