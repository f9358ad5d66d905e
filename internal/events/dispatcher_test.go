package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDispatcher_PublishToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventBatchEnriched, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})
	d.Subscribe(EventBatchFailed, func(_ context.Context, _ Event) error {
		t.Error("unexpected handler call")
		return nil
	})

	event := New(EventBatchEnriched, "run-1", BatchEnrichedPayload{Enriched: 3})
	require.NoError(t, d.Publish(context.Background(), event))

	require.Len(t, got, 1)
	assert.Equal(t, "run-1", got[0].RunID)
	assert.NotEmpty(t, got[0].ID)
}

func TestDispatcher_RunsAllHandlersOnError(t *testing.T) {
	d := NewInMemoryDispatcher()
	errFirst := errors.New("first")

	calls := 0
	d.Subscribe(EventBatchFailed, func(_ context.Context, _ Event) error {
		calls++
		return errFirst
	})
	d.Subscribe(EventBatchFailed, func(_ context.Context, _ Event) error {
		calls++
		return nil
	})

	err := d.Publish(context.Background(), New(EventBatchFailed, "run-2", nil))
	assert.ErrorIs(t, err, errFirst)
	assert.Equal(t, 2, calls)
}

func TestDispatcher_NoSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), New(EventUnknownDepartmentCode, "run-3", nil)))
}
