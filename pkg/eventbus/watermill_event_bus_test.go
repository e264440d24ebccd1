package eventbus_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/dukex/planeditor/pkg/channels/gochannel"
	"github.com/dukex/planeditor/pkg/eventbus"
	"github.com/dukex/planeditor/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBus(t *testing.T) eventbus.EventBus {
	t.Helper()

	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := eventbus.NewWatermillEventBus(pub, sub, nil)
	t.Cleanup(func() { _ = bus.Close() })

	return bus
}

func TestWatermillEventBus_DeliversTypedEvents(t *testing.T) {
	t.Parallel()

	bus := newBus(t)
	received := make(chan *events.TokenCreated, 1)

	require.NoError(t, bus.Handle(events.TokenCreatedEvent, func(_ context.Context, event any) error {
		created, ok := event.(*events.TokenCreated)
		require.True(t, ok)
		received <- created

		return nil
	}))
	require.NoError(t, bus.Subscribe(t.Context()))

	err := bus.Publish(t.Context(), "exec-1", events.TokenCreated{
		BaseEvent: events.NewBaseEvent(events.TokenCreatedEvent, "exec-1"),
		TokenID:   "t1",
		StepID:    "stepA",
	})
	require.NoError(t, err)

	select {
	case created := <-received:
		assert.Equal(t, "t1", created.TokenID)
		assert.Equal(t, "stepA", created.StepID)
		assert.Equal(t, "exec-1", created.ExecutionID)
	case <-time.After(5 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestWatermillEventBus_IgnoresUnhandledTypes(t *testing.T) {
	t.Parallel()

	bus := newBus(t)
	received := make(chan events.EventType, 2)

	require.NoError(t, bus.Handle(events.StepStartedEvent, func(_ context.Context, event any) error {
		received <- event.(*events.StepStarted).Type

		return nil
	}))
	require.NoError(t, bus.Subscribe(t.Context()))

	require.NoError(t, bus.Publish(t.Context(), "exec-1", events.ContextUpdated{
		BaseEvent: events.NewBaseEvent(events.ContextUpdatedEvent, "exec-1"),
	}))
	require.NoError(t, bus.Publish(t.Context(), "exec-1", events.StepStarted{
		BaseEvent: events.NewBaseEvent(events.StepStartedEvent, "exec-1"),
		StepID:    "stepA",
	}))

	select {
	case eventType := <-received:
		assert.Equal(t, events.StepStartedEvent, eventType)
	case <-time.After(5 * time.Second):
		t.Fatal("event not delivered")
	}

	assert.Empty(t, received)
}

func TestWatermillEventBus_GenerateID(t *testing.T) {
	t.Parallel()

	bus := newBus(t)
	assert.NotEqual(t, bus.GenerateID(), bus.GenerateID())
}

func TestWatermillEventBus_HandlerErrorIsNotFatal(t *testing.T) {
	t.Parallel()

	bus := newBus(t)
	attempts := make(chan struct{}, 10)

	require.NoError(t, bus.Handle(events.ExecutionFailedEvent, func(context.Context, any) error {
		attempts <- struct{}{}
		if len(attempts) == 1 {
			return errors.New("boom")
		}

		return nil
	}))
	require.NoError(t, bus.Subscribe(t.Context()))

	require.NoError(t, bus.Publish(t.Context(), "exec-1", events.ExecutionFailed{
		BaseEvent: events.NewBaseEvent(events.ExecutionFailedEvent, "exec-1"),
		Error:     "down",
	}))

	assert.GreaterOrEqual(t, len(attempts), 2)
}
