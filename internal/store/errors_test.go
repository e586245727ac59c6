package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/forget/internal/task"
	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	assert.True(t, IsNotFoundError(ErrFaultNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("lookup: %w", ErrNotFound)))
	assert.False(t, IsNotFoundError(ErrFaultExists))

	assert.True(t, IsDuplicateError(ErrFaultExists))
	assert.False(t, IsDuplicateError(errors.New("other")))
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewStoreError("fault", "save", "insert failed", cause)

	assert.Equal(t, "save operation on fault failed: insert failed: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewStoreError("fault", "list", "bad limit", nil)
	assert.Equal(t, "list operation on fault failed: bad limit", bare.Error())
}

func TestValidateFault(t *testing.T) {
	valid := task.FaultRecord{
		InvocationID: uuid.New(),
		Kind:         task.FaultKindError,
		Message:      "boom",
		OccurredAt:   time.Now().UTC(),
	}

	tests := []struct {
		name    string
		mutate  func(r *task.FaultRecord)
		wantErr bool
	}{
		{name: "valid", mutate: func(*task.FaultRecord) {}},
		{name: "panic kind", mutate: func(r *task.FaultRecord) { r.Kind = task.FaultKindPanic }},
		{name: "missing id", mutate: func(r *task.FaultRecord) { r.InvocationID = uuid.Nil }, wantErr: true},
		{name: "empty message", mutate: func(r *task.FaultRecord) { r.Message = "" }},
		{name: "unknown kind", mutate: func(r *task.FaultRecord) { r.Kind = "timeout" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := valid
			tt.mutate(&rec)
			err := ValidateFault(rec)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEntity)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
