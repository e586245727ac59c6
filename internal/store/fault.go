package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/forget/internal/task"
)

// DefaultListLimit caps ListFaults when the caller passes a non-positive limit.
const DefaultListLimit = 50

// FaultStore persists fault records captured by the dispatcher.
type FaultStore interface {
	FaultReader

	// SaveFault records rec. It returns ErrFaultExists when a fault for the
	// same invocation is already stored and ErrInvalidEntity when rec is
	// missing its invocation id or has an unknown kind.
	SaveFault(ctx context.Context, rec task.FaultRecord) error
}

// FaultReader is the read side of a fault store. The in-memory recorder and
// the database store both satisfy it.
type FaultReader interface {
	GetFault(ctx context.Context, invocationID uuid.UUID) (task.FaultRecord, error)
	ListFaults(ctx context.Context, limit int) ([]task.FaultRecord, error)
}

// ValidateFault checks that rec carries what every store needs.
func ValidateFault(rec task.FaultRecord) error {
	switch {
	case rec.InvocationID == uuid.Nil:
		return NewStoreError("fault", "validate", "invocation id is required", ErrInvalidEntity)
	case rec.Kind != task.FaultKindError && rec.Kind != task.FaultKindPanic:
		return NewStoreError("fault", "validate", "unknown fault kind "+string(rec.Kind), ErrInvalidEntity)
	}
	return nil
}
