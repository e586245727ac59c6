// Package api exposes the dispatcher over HTTP: submitting demo work in
// fire-and-forget or awaited mode, listing captured faults, and reporting
// dispatcher statistics.
package api
