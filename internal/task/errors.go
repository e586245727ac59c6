package task

import (
	"errors"
	"fmt"
)

// Errors reported synchronously by the dispatcher at submission time
var (
	ErrNilWork          = errors.New("work is nil")
	ErrDispatcherClosed = errors.New("dispatcher is closed")
	ErrQueueFull        = errors.New("work queue is full")
	ErrNilSink          = errors.New("fault sink is nil")
)

// ErrInvalidTransition is returned when a work item state change would break
// the Pending -> Running -> {Completed|Faulted} order.
var ErrInvalidTransition = errors.New("invalid work state transition")

// SubmissionError is the only failure Submit, SubmitAwaitable and Forget
// return to their caller. It describes a rejected submission; the work was
// never started.
type SubmissionError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *SubmissionError) Error() string {
	return fmt.Sprintf("%s rejected: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *SubmissionError) Unwrap() error {
	return e.Err
}

func rejected(op string, err error) error {
	return &SubmissionError{Op: op, Err: err}
}

// IsSubmissionError checks if an error is a SubmissionError
func IsSubmissionError(err error) bool {
	var subErr *SubmissionError
	return errors.As(err, &subErr)
}

// PanicError wraps a value recovered from a panicking work item or sink.
type PanicError struct {
	Value any
	Stack []byte
}

// Error implements the error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
