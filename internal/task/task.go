package task

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// WorkStatus represents the current state of a work item
type WorkStatus string

// Possible work status values
const (
	WorkStatusPending   WorkStatus = "pending"
	WorkStatusRunning   WorkStatus = "running"
	WorkStatusCompleted WorkStatus = "completed"
	WorkStatusFaulted   WorkStatus = "faulted"
)

// Terminal reports whether no further transition is possible from s.
func (s WorkStatus) Terminal() bool {
	return s == WorkStatusCompleted || s == WorkStatusFaulted
}

// Work is a unit of deferred computation. It may block or wait on other
// goroutines internally; the worker running it simply waits. The context is
// cancelled when the dispatcher is forced to stop or the work's handle is
// cancelled.
type Work func(ctx context.Context) error

// Action adapts a synchronous function with no result into Work.
func Action(fn func()) Work {
	if fn == nil {
		return nil
	}
	return func(context.Context) error {
		fn()
		return nil
	}
}

// ActionErr adapts a synchronous function returning an error into Work.
func ActionErr(fn func() error) Work {
	if fn == nil {
		return nil
	}
	return func(context.Context) error {
		return fn()
	}
}

// Submitter is the surface consumed by code that hands work to the dispatcher.
type Submitter interface {
	// Submit runs work in the background. Failures go to the fault sink.
	Submit(work Work) error

	// SubmitAwaitable runs work in the background and returns a handle the
	// caller must observe. Failures are reported through the handle only.
	SubmitAwaitable(work Work) (*Handle, error)
}

// stateCode is the compact form of WorkStatus stored in workItem.state.
type stateCode int32

const (
	statePending stateCode = iota
	stateRunning
	stateCompleted
	stateFaulted
)

func (c stateCode) status() WorkStatus {
	switch c {
	case stateRunning:
		return WorkStatusRunning
	case stateCompleted:
		return WorkStatusCompleted
	case stateFaulted:
		return WorkStatusFaulted
	default:
		return WorkStatusPending
	}
}

// workItem is a submitted Work together with its identity and state.
type workItem struct {
	id          uuid.UUID
	work        Work
	ctx         context.Context
	state       atomic.Int32
	submittedAt time.Time

	// handle is nil for fire-and-forget submissions.
	handle *Handle
}

func newWorkItem(work Work) *workItem {
	return &workItem{
		id:          uuid.New(),
		work:        work,
		submittedAt: time.Now(),
	}
}

// Status returns the current state of the item.
func (w *workItem) Status() WorkStatus {
	return stateCode(w.state.Load()).status()
}

// transition moves the item from one state to the next. Each edge of
// Pending -> Running -> {Completed|Faulted} can be taken only once.
func (w *workItem) transition(from, to stateCode) error {
	if !w.state.CompareAndSwap(int32(from), int32(to)) {
		return fmt.Errorf("%w: %s -> %s (current %s)",
			ErrInvalidTransition, from.status(), to.status(), w.Status())
	}
	return nil
}

type invocationKey struct{}

// withInvocationID annotates ctx with the invocation id of the running item.
func withInvocationID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, invocationKey{}, id)
}

// InvocationID returns the invocation id of the work item that owns ctx.
// The boolean is false when ctx was not created by the dispatcher.
func InvocationID(ctx context.Context) (uuid.UUID, bool) {
	if ctx == nil {
		return uuid.Nil, false
	}
	id, ok := ctx.Value(invocationKey{}).(uuid.UUID)
	return id, ok
}
