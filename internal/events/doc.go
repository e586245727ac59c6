// Package events fans captured faults out to several sinks.
//
// The dispatcher accepts exactly one FaultSink. FaultEmitter is that sink
// when a fault has to reach more than one place (the log, the in-memory
// recorder, the database): it calls every registered sink in registration
// order and keeps going when one of them fails.
package events
