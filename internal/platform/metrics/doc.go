// Package metrics exposes dispatcher statistics and HTTP request metrics to
// Prometheus.
package metrics
