// Package store defines the persistence interfaces for captured faults.
// Implementations live under internal/platform; callers depend only on
// these interfaces and the shared error values.
package store
