package task

import "time"

// Config holds configuration options for the dispatcher
type Config struct {
	// Workers is the number of goroutines executing work.
	// If zero or negative, defaults to 1
	Workers int

	// QueueSize is the number of submitted items that may wait for a worker.
	// Submissions beyond it are rejected with ErrQueueFull.
	QueueSize int

	// SerializeFaults routes every fault through a single delivery goroutine,
	// for sinks that are not safe for concurrent use.
	SerializeFaults bool

	// FaultBuffer is the capacity of the serialized delivery queue
	FaultBuffer int

	// SinkTimeout bounds the context handed to FaultSink.OnFault.
	// Zero means no deadline.
	SinkTimeout time.Duration
}

// DefaultConfig returns a Config with reasonable defaults
func DefaultConfig() Config {
	return Config{
		Workers:     4,
		QueueSize:   1024,
		FaultBuffer: 256,
		SinkTimeout: 5 * time.Second,
	}
}

// withDefaults fills zero values from DefaultConfig
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.QueueSize <= 0 {
		c.QueueSize = def.QueueSize
	}
	if c.FaultBuffer <= 0 {
		c.FaultBuffer = def.FaultBuffer
	}
	if c.SinkTimeout < 0 {
		c.SinkTimeout = 0
	}
	return c
}
