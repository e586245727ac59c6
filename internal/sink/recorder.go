package sink

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/phrazzld/forget/internal/store"
	"github.com/phrazzld/forget/internal/task"
)

// DefaultRecorderCapacity is used when NewRecorder gets a non-positive capacity.
const DefaultRecorderCapacity = 1000

// Recorder keeps the most recent faults in a fixed-size ring. It is safe
// for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	buf   []task.FaultRecord
	next  int
	full  bool
	total int64
}

var (
	_ task.FaultSink    = (*Recorder)(nil)
	_ store.FaultReader = (*Recorder)(nil)
)

// NewRecorder creates a Recorder that keeps up to capacity faults.
func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = DefaultRecorderCapacity
	}
	return &Recorder{buf: make([]task.FaultRecord, capacity)}
}

// OnFault stores rec, evicting the oldest fault when the ring is full.
func (r *Recorder) OnFault(_ context.Context, rec task.FaultRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buf[r.next] = rec
	r.next = (r.next + 1) % len(r.buf)
	if r.next == 0 {
		r.full = true
	}
	r.total++
	return nil
}

// ListFaults returns up to limit faults, newest first. A non-positive limit
// uses store.DefaultListLimit.
func (r *Recorder) ListFaults(_ context.Context, limit int) ([]task.FaultRecord, error) {
	if limit <= 0 {
		limit = store.DefaultListLimit
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	n := r.lenLocked()
	if limit > n {
		limit = n
	}

	out := make([]task.FaultRecord, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (r.next - i + len(r.buf)) % len(r.buf)
		out = append(out, r.buf[idx])
	}
	return out, nil
}

// GetFault returns the held fault for invocationID, or store.ErrFaultNotFound
// when it was never recorded or has been evicted.
func (r *Recorder) GetFault(_ context.Context, invocationID uuid.UUID) (task.FaultRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := 0; i < r.lenLocked(); i++ {
		if r.buf[i].InvocationID == invocationID {
			return r.buf[i], nil
		}
	}
	return task.FaultRecord{}, fmt.Errorf("%w: %s", store.ErrFaultNotFound, invocationID)
}

// Len returns the number of faults currently held.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lenLocked()
}

// Total returns the number of faults ever recorded, including evicted ones.
func (r *Recorder) Total() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

func (r *Recorder) lenLocked() int {
	if r.full {
		return len(r.buf)
	}
	return r.next
}
