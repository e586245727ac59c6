package task

import (
	"fmt"
	"log/slog"
	"sync"
)

// workQueue is a bounded FIFO of pending work items shared by all workers.
type workQueue struct {
	mu     sync.RWMutex
	items  chan *workItem
	logger *slog.Logger
	closed bool
}

// newWorkQueue creates a queue with the specified buffer size
func newWorkQueue(size int, logger *slog.Logger) *workQueue {
	return &workQueue{
		items:  make(chan *workItem, size),
		logger: logger,
	}
}

// enqueue adds an item without blocking.
// Returns an error if the queue is full or closed
func (q *workQueue) enqueue(item *workItem) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrDispatcherClosed
	}

	select {
	case q.items <- item:
		q.logger.Debug("work enqueued",
			"invocation_id", item.id,
			"queue_len", len(q.items),
			"queue_cap", cap(q.items))
		return nil
	default:
		return fmt.Errorf("%w: queue capacity %d reached", ErrQueueFull, cap(q.items))
	}
}

// close prevents further submissions. Items already queued stay readable
// until the channel is drained.
func (q *workQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.items)
		q.logger.Debug("work queue closed", "remaining", len(q.items))
	}
}

// channel returns a read-only channel for consuming work items
func (q *workQueue) channel() <-chan *workItem {
	return q.items
}

// len returns the number of items waiting for a worker
func (q *workQueue) len() int {
	return len(q.items)
}
