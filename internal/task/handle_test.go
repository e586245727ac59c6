package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle_WaitHonoursContext(t *testing.T) {
	d := newTestDispatcher(t, DefaultConfig(), &recordingSink{})

	release := make(chan struct{})
	h, err := d.SubmitAwaitable(Action(func() { <-release }))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, h.Wait(ctx), context.DeadlineExceeded)
	assert.Nil(t, h.Err(), "Err should be nil while work is running")
	assert.False(t, h.Status().Terminal())

	close(release)
	require.NoError(t, h.Wait(context.Background()))
	assert.True(t, h.Status().Terminal())
}

func TestHandle_Cancel(t *testing.T) {
	d := newTestDispatcher(t, DefaultConfig(), &recordingSink{})

	started := make(chan struct{})
	h, err := d.SubmitAwaitable(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})
	require.NoError(t, err)

	<-started
	h.Cancel()

	assert.ErrorIs(t, h.Wait(context.Background()), context.Canceled)
	assert.Equal(t, WorkStatusFaulted, h.Status())
}

func TestHandle_ResolveOnce(t *testing.T) {
	item := newWorkItem(Action(func() {}))
	h := newHandle(item)

	first := errors.New("first")
	h.resolve(first)
	h.resolve(errors.New("second"))

	assert.ErrorIs(t, h.Err(), first)
	select {
	case <-h.Done():
	default:
		t.Fatal("Done should be closed after resolve")
	}
}

func TestWorkItem_Transitions(t *testing.T) {
	item := newWorkItem(Action(func() {}))
	assert.Equal(t, WorkStatusPending, item.Status())

	require.NoError(t, item.transition(statePending, stateRunning))
	assert.Equal(t, WorkStatusRunning, item.Status())

	err := item.transition(statePending, stateRunning)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, item.transition(stateRunning, stateFaulted))
	assert.Equal(t, WorkStatusFaulted, item.Status())

	assert.ErrorIs(t, item.transition(stateRunning, stateCompleted), ErrInvalidTransition)
	assert.Equal(t, WorkStatusFaulted, item.Status())
}

func TestWorkQueue(t *testing.T) {
	q := newWorkQueue(1, setupTestLogger())

	require.NoError(t, q.enqueue(newWorkItem(Action(func() {}))))
	assert.Equal(t, 1, q.len())

	err := q.enqueue(newWorkItem(Action(func() {})))
	assert.ErrorIs(t, err, ErrQueueFull)
	assert.Contains(t, err.Error(), "capacity 1")

	q.close()
	q.close()
	assert.ErrorIs(t, q.enqueue(newWorkItem(Action(func() {}))), ErrDispatcherClosed)

	// Items queued before close remain readable.
	item, ok := <-q.channel()
	assert.True(t, ok)
	assert.NotNil(t, item)
	_, ok = <-q.channel()
	assert.False(t, ok)
}

func TestFaultRecord(t *testing.T) {
	item := newWorkItem(Action(func() {}))

	rec := newFaultRecord(item.id, errors.New("plain"))
	assert.Equal(t, FaultKindError, rec.Kind)
	assert.Equal(t, "*errors.errorString", rec.ErrorType)
	assert.Equal(t, item.id, rec.InvocationID)
	assert.Equal(t, time.UTC, rec.OccurredAt.Location())

	rec = newFaultRecord(item.id, &PanicError{Value: 42, Stack: []byte("stack")})
	assert.Equal(t, FaultKindPanic, rec.Kind)
	assert.Equal(t, "int", rec.ErrorType)
	assert.Equal(t, "stack", rec.Stack)
	assert.Equal(t, "panic: 42", rec.Message)
}
