// Package sink holds the fault sinks wired into the dispatcher: a structured
// log sink, a bounded in-memory recorder that backs the faults API, and a
// sink that persists faults through a store.FaultStore.
package sink
