package task

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
)

// FaultKind classifies how a work item failed
type FaultKind string

// Possible fault kinds
const (
	FaultKindError FaultKind = "error"
	FaultKindPanic FaultKind = "panic"
)

// FaultRecord describes one failed fire-and-forget work item.
// The dispatcher builds it on the goroutine that observed the failure and
// passes it by value to the sink; it keeps no copy afterwards.
type FaultRecord struct {
	InvocationID uuid.UUID `json:"invocation_id"`
	Kind         FaultKind `json:"kind"`
	Message      string    `json:"message"`
	ErrorType    string    `json:"error_type"`
	Stack        string    `json:"stack,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`

	// Err is the original error. It is not serialized.
	Err error `json:"-"`
}

// newFaultRecord captures err for the item with the given id. Panics keep the
// stack of the panicking goroutine; plain errors get the stack of the
// goroutine that observed them. It never panics, even when err's methods do.
func newFaultRecord(id uuid.UUID, err error) FaultRecord {
	rec := FaultRecord{
		InvocationID: id,
		Kind:         FaultKindError,
		Message:      errorMessage(err),
		ErrorType:    fmt.Sprintf("%T", err),
		OccurredAt:   time.Now().UTC(),
		Err:          err,
	}

	if panicErr, ok := asPanicError(err); ok {
		rec.Kind = FaultKindPanic
		rec.ErrorType = fmt.Sprintf("%T", panicErr.Value)
		rec.Stack = string(panicErr.Stack)
	} else {
		rec.Stack = string(debug.Stack())
	}

	return rec
}

// errorMessage returns err.Error(), or a description of the failure when
// Error itself panics (typically a nil pointer receiver).
func errorMessage(err error) (msg string) {
	defer func() {
		if r := recover(); r != nil {
			msg = fmt.Sprintf("%T (Error panicked: %v)", err, r)
		}
	}()
	return err.Error()
}

// asPanicError is errors.As guarded against Unwrap or As methods that panic.
func asPanicError(err error) (panicErr *PanicError, ok bool) {
	defer func() {
		if recover() != nil {
			panicErr, ok = nil, false
		}
	}()
	ok = errors.As(err, &panicErr)
	return panicErr, ok
}

// FaultSink receives faults of fire-and-forget work.
// Implementations should be safe for concurrent use unless the dispatcher is
// configured with SerializeFaults. Errors and panics from OnFault are
// discarded by the dispatcher.
type FaultSink interface {
	OnFault(ctx context.Context, rec FaultRecord) error
}

// FaultSinkFunc adapts an ordinary function to the FaultSink interface.
type FaultSinkFunc func(ctx context.Context, rec FaultRecord) error

// OnFault calls f(ctx, rec).
func (f FaultSinkFunc) OnFault(ctx context.Context, rec FaultRecord) error {
	return f(ctx, rec)
}
