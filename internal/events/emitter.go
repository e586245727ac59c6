package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/forget/internal/task"
)

type registeredSink struct {
	name string
	sink task.FaultSink
}

// FaultEmitter is a task.FaultSink that forwards each fault to every
// registered sink.
type FaultEmitter struct {
	sinks  []registeredSink
	mu     sync.RWMutex
	logger *slog.Logger
}

var _ task.FaultSink = (*FaultEmitter)(nil)

// NewFaultEmitter creates an emitter with no sinks.
func NewFaultEmitter(logger *slog.Logger) *FaultEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &FaultEmitter{
		logger: logger.With("component", "fault_emitter"),
	}
}

// Register adds sink under name. Sinks are called in registration order.
func (e *FaultEmitter) Register(name string, sink task.FaultSink) {
	if sink == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sinks = append(e.sinks, registeredSink{name: name, sink: sink})
	e.logger.Debug("registered fault sink", "sink", name, "sink_count", len(e.sinks))
}

// Len returns the number of registered sinks.
func (e *FaultEmitter) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.sinks)
}

// OnFault calls every registered sink with rec. A failing or panicking sink
// is logged and does not stop the others. An error is returned only when
// every sink failed, so the fault counts as delivered if any sink took it.
func (e *FaultEmitter) OnFault(ctx context.Context, rec task.FaultRecord) error {
	e.mu.RLock()
	sinks := make([]registeredSink, len(e.sinks))
	copy(sinks, e.sinks)
	e.mu.RUnlock()

	if len(sinks) == 0 {
		e.logger.Warn("no sinks registered for fault",
			"invocation_id", rec.InvocationID,
			"kind", rec.Kind)
		return nil
	}

	var errs []error
	for _, s := range sinks {
		if err := callSink(ctx, s.sink, rec); err != nil {
			e.logger.Error("fault sink failed",
				"sink", s.name,
				"invocation_id", rec.InvocationID,
				"error", err)
			errs = append(errs, fmt.Errorf("sink %s: %w", s.name, err))
		}
	}

	if len(errs) == len(sinks) {
		return errors.Join(errs...)
	}
	return nil
}

func callSink(ctx context.Context, sink task.FaultSink, rec task.FaultRecord) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink panicked: %v", r)
		}
	}()
	return sink.OnFault(ctx, rec)
}
