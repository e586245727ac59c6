package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/phrazzld/forget/internal/platform/logger"
)

// Dispatcher runs submitted work on a pool of worker goroutines and makes
// sure every failure of fire-and-forget work ends up at one FaultSink
// instead of escaping into the caller.
type Dispatcher struct {
	queue  *workQueue
	pool   *workerPool
	faults *faultDeliverer
	logger *slog.Logger

	// ctx is the parent of every work context; cancelling it asks running
	// work to stop.
	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.RWMutex
	closed    bool
	observers sync.WaitGroup

	shutdownOnce sync.Once
	drained      chan struct{}

	submitted atomic.Int64
	running   atomic.Int64
	completed atomic.Int64
	faulted   atomic.Int64
	rejected  atomic.Int64
}

var _ Submitter = (*Dispatcher)(nil)

// New creates a Dispatcher and starts its workers.
func New(cfg Config, sink FaultSink, log *slog.Logger) (*Dispatcher, error) {
	if sink == nil {
		return nil, ErrNilSink
	}
	if log == nil {
		log = slog.Default()
	}
	cfg = cfg.withDefaults()
	log = log.With("component", "task_dispatcher")

	ctx, cancel := context.WithCancel(context.Background())

	d := &Dispatcher{
		queue:   newWorkQueue(cfg.QueueSize, log),
		faults:  newFaultDeliverer(sink, cfg, log),
		logger:  log,
		ctx:     ctx,
		cancel:  cancel,
		drained: make(chan struct{}),
	}
	d.pool = newWorkerPool(d.queue.channel(), cfg.Workers, d.execute, log)

	d.faults.start()
	d.pool.start()

	log.Info("dispatcher started",
		"workers", d.pool.workerCount,
		"queue_size", cfg.QueueSize,
		"serialize_faults", cfg.SerializeFaults)

	return d, nil
}

// Submit enqueues work and returns immediately. The caller gets no way to
// observe the outcome: if the work fails, the fault sink is called exactly
// once on a dispatcher goroutine.
//
// The returned error is always a *SubmissionError and means the work was not
// accepted (nil work, closed dispatcher or full queue).
func (d *Dispatcher) Submit(work Work) error {
	_, err := d.enqueue("submit", work, false)
	return err
}

// SubmitAwaitable enqueues work and returns a handle for the caller to
// observe. Failures are reported through the handle and never reach the
// fault sink unless the handle is passed to Forget.
func (d *Dispatcher) SubmitAwaitable(work Work) (*Handle, error) {
	item, err := d.enqueue("submit awaitable", work, true)
	if err != nil {
		return nil, err
	}
	return item.handle, nil
}

// Forget gives up observing h. If the work behind h has already completed
// successfully nothing is allocated; otherwise a dispatcher goroutine waits
// for it and sends any failure to the fault sink. Only the first Forget of a
// handle does anything; later calls return nil.
func (d *Dispatcher) Forget(h *Handle) error {
	if h == nil {
		return rejected("forget", ErrNilWork)
	}
	if h.completedSuccessfully() {
		return nil
	}

	d.mu.RLock()
	if d.closed {
		d.mu.RUnlock()
		return rejected("forget", ErrDispatcherClosed)
	}
	if !h.forgotten.CompareAndSwap(false, true) {
		d.mu.RUnlock()
		return nil
	}
	d.observers.Add(1)
	d.mu.RUnlock()

	go func() {
		defer d.observers.Done()
		<-h.Done()
		if err := h.Err(); err != nil {
			d.faults.deliver(newFaultRecord(h.ID(), err))
		}
	}()

	return nil
}

// Shutdown stops accepting work and waits for queued and running items and
// pending fault deliveries to finish. If ctx ends first, the context passed
// to running work is cancelled and ctx.Err() is returned wrapped; draining
// continues in the background. Calling Shutdown again waits for the same
// drain.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.shutdownOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		d.mu.Unlock()

		d.queue.close()

		d.logger.Info("dispatcher shutting down",
			"queued", d.queue.len(),
			"running", d.running.Load())

		go func() {
			d.pool.wait()
			d.observers.Wait()
			d.faults.stop()
			d.cancel()
			close(d.drained)
		}()
	})

	select {
	case <-d.drained:
		d.logger.Info("dispatcher stopped")
		return nil
	case <-ctx.Done():
		d.cancel()
		d.logger.Warn("dispatcher shutdown interrupted, cancelling running work",
			"running", d.running.Load(),
			"queued", d.queue.len())
		return fmt.Errorf("dispatcher shutdown: %w", ctx.Err())
	}
}

func (d *Dispatcher) enqueue(op string, work Work, awaitable bool) (*workItem, error) {
	if work == nil {
		return nil, rejected(op, ErrNilWork)
	}

	item := newWorkItem(work)
	item.ctx = d.ctx
	if awaitable {
		h := newHandle(item)
		item.ctx, h.cancel = context.WithCancel(d.ctx)
	}

	if err := d.queue.enqueue(item); err != nil {
		if errors.Is(err, ErrQueueFull) {
			d.rejected.Add(1)
			d.logger.Warn("work rejected", "invocation_id", item.id, "error", err)
		}
		if item.handle != nil {
			item.handle.cancel()
		}
		return nil, rejected(op, err)
	}

	d.submitted.Add(1)
	return item, nil
}

// execute runs one item on a worker goroutine and settles its outcome.
func (d *Dispatcher) execute(workerID int, item *workItem) {
	log := d.logger.With("invocation_id", item.id, "worker_id", workerID)

	if err := item.transition(statePending, stateRunning); err != nil {
		log.Error("refusing to run work item", "error", err)
		return
	}

	d.running.Add(1)
	log.Debug("running work", "queued_for", time.Since(item.submittedAt))

	ctx := logger.WithLogger(withInvocationID(item.ctx, item.id), log)
	err := runProtected(ctx, item.work)

	d.running.Add(-1)

	if err == nil {
		d.settle(item, stateCompleted, log)
		d.completed.Add(1)
		if item.handle != nil {
			item.handle.resolve(nil)
		}
		log.Debug("work completed")
		return
	}

	d.settle(item, stateFaulted, log)
	d.faulted.Add(1)

	if item.handle != nil {
		log.Debug("awaitable work faulted", "error_type", fmt.Sprintf("%T", err))
		item.handle.resolve(err)
		return
	}

	log.Debug("work faulted, delivering to fault sink", "error_type", fmt.Sprintf("%T", err))
	d.faults.deliver(newFaultRecord(item.id, err))
}

func (d *Dispatcher) settle(item *workItem, to stateCode, log *slog.Logger) {
	if err := item.transition(stateRunning, to); err != nil {
		log.Error("work item settled twice", "error", err)
	}
}

// runProtected calls work and converts a panic into a *PanicError.
func runProtected(ctx context.Context, work Work) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return work(ctx)
}
