// Package shared holds the request and response helpers used by the API
// handlers and middleware: trace IDs, JSON decoding with validation, and
// error responses that never leak unredacted error text.
package shared
