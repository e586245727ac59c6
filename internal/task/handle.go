package task

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Handle represents the eventual outcome of a work item submitted with
// SubmitAwaitable. The caller is expected to observe it, either with Wait or
// by passing it to Dispatcher.Forget.
type Handle struct {
	item   *workItem
	done   chan struct{}
	cancel context.CancelFunc

	once sync.Once
	err  error

	// forgotten is set by the first successful Dispatcher.Forget.
	forgotten atomic.Bool
}

func newHandle(item *workItem) *Handle {
	h := &Handle{
		item:   item,
		done:   make(chan struct{}),
		cancel: func() {},
	}
	item.handle = h
	return h
}

// ID returns the invocation id of the underlying work item
func (h *Handle) ID() uuid.UUID {
	return h.item.id
}

// Status returns the current state of the underlying work item
func (h *Handle) Status() WorkStatus {
	return h.item.Status()
}

// Done returns a channel that is closed once the work has completed or faulted.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Err returns the error the work finished with. It is nil while the work is
// still pending or running, and nil after a successful completion.
func (h *Handle) Err() error {
	select {
	case <-h.done:
		return h.err
	default:
		return nil
	}
}

// Wait blocks until the work finishes and returns its error, or until ctx is
// done, in which case ctx.Err() is returned and the work keeps running.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Cancel requests cooperative cancellation by cancelling the context passed
// to the work. Work that ignores its context runs to completion.
func (h *Handle) Cancel() {
	h.cancel()
}

// resolve records the outcome and releases waiters. Only the first call has
// an effect.
func (h *Handle) resolve(err error) {
	h.once.Do(func() {
		h.err = err
		close(h.done)
		h.cancel()
	})
}

// completedSuccessfully reports whether the handle is already done without
// error, without blocking.
func (h *Handle) completedSuccessfully() bool {
	select {
	case <-h.done:
		return h.err == nil
	default:
		return false
	}
}
