package task

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

// faultDeliverer hands fault records to the sink on dispatcher goroutines.
// In serialized mode a single goroutine drains an internal queue so the sink
// is never called concurrently; otherwise the observing goroutine calls the
// sink directly.
type faultDeliverer struct {
	sink    FaultSink
	timeout time.Duration
	logger  *slog.Logger

	serialize bool
	queue     chan FaultRecord
	wg        sync.WaitGroup

	delivered    atomic.Int64
	sinkFailures atomic.Int64
}

func newFaultDeliverer(sink FaultSink, cfg Config, logger *slog.Logger) *faultDeliverer {
	d := &faultDeliverer{
		sink:      sink,
		timeout:   cfg.SinkTimeout,
		logger:    logger,
		serialize: cfg.SerializeFaults,
	}
	if d.serialize {
		d.queue = make(chan FaultRecord, cfg.FaultBuffer)
	}
	return d
}

func (d *faultDeliverer) start() {
	if !d.serialize {
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for rec := range d.queue {
			d.invoke(rec)
		}
	}()
}

// deliver routes rec to the sink. In serialized mode it blocks while the
// delivery queue is full; faults are never dropped.
func (d *faultDeliverer) deliver(rec FaultRecord) {
	if d.serialize {
		d.queue <- rec
		return
	}
	d.invoke(rec)
}

// stop drains pending deliveries. It must only be called once nothing can
// call deliver any more.
func (d *faultDeliverer) stop() {
	if d.serialize {
		close(d.queue)
		d.wg.Wait()
	}
}

// invoke calls the sink once. Anything the sink returns or panics with is
// logged and dropped here.
func (d *faultDeliverer) invoke(rec FaultRecord) {
	log := d.logger.With("invocation_id", rec.InvocationID, "fault_kind", rec.Kind)

	ctx := context.Background()
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			d.sinkFailures.Add(1)
			log.Warn("fault sink panicked, fault discarded",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()

	if err := d.sink.OnFault(ctx, rec); err != nil {
		d.sinkFailures.Add(1)
		log.Warn("fault sink returned error, fault discarded", "error", err)
		return
	}

	d.delivered.Add(1)
}
