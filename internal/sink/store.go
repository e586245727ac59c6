package sink

import (
	"context"
	"fmt"

	"github.com/phrazzld/forget/internal/store"
	"github.com/phrazzld/forget/internal/task"
)

// StoreSink persists faults through a store.FaultStore.
type StoreSink struct {
	store store.FaultStore
}

var _ task.FaultSink = (*StoreSink)(nil)

// NewStoreSink creates a StoreSink backed by s.
func NewStoreSink(s store.FaultStore) *StoreSink {
	return &StoreSink{store: s}
}

// OnFault saves rec. The dispatcher bounds ctx with its sink timeout.
func (s *StoreSink) OnFault(ctx context.Context, rec task.FaultRecord) error {
	if err := s.store.SaveFault(ctx, rec); err != nil {
		return fmt.Errorf("persist fault %s: %w", rec.InvocationID, err)
	}
	return nil
}
