package eventbus

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_SubscribePublish(t *testing.T) {
	bus := NewEventBus(nil)
	var called bool
	bus.Subscribe(EventTypeDocumentUpdated, func(ctx context.Context, event Event) error {
		called = true
		assert.Equal(t, EventTypeDocumentUpdated, event.Type())
		assert.Equal(t, "pages/home", event.Data())
		return nil
	})
	err := bus.Publish(context.Background(), NewBasicEvent(EventTypeDocumentUpdated, "pages/home"))
	require.NoError(t, err)
	assert.True(t, called)
}

func TestEventBus_PublishWithoutSubscribers(t *testing.T) {
	bus := NewEventBus(nil)
	assert.NoError(t, bus.Publish(context.Background(), NewBasicEvent("nobody", nil)))
}

func TestEventBus_AsyncPublish(t *testing.T) {
	bus := NewEventBusWithConfig(NoopLogger(), BusConfig{AsyncProcessing: true})
	ch := make(chan struct{}, 1)
	bus.Subscribe("async", func(ctx context.Context, event Event) error {
		ch <- struct{}{}
		return nil
	})
	require.NoError(t, bus.Publish(context.Background(), NewBasicEvent("async", nil)))
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for async event")
	}
}

func TestEventBus_CancelRemovesOnlyThatHandler(t *testing.T) {
	bus := NewEventBus(nil)
	var first, second int32
	cancel := bus.Subscribe("ev", func(ctx context.Context, event Event) error {
		atomic.AddInt32(&first, 1)
		return nil
	})
	bus.Subscribe("ev", func(ctx context.Context, event Event) error {
		atomic.AddInt32(&second, 1)
		return nil
	})
	assert.Equal(t, 2, bus.GetSubscriberCount("ev"))

	cancel()
	cancel()
	assert.Equal(t, 1, bus.GetSubscriberCount("ev"))

	require.NoError(t, bus.Publish(context.Background(), NewBasicEvent("ev", nil)))
	assert.Equal(t, int32(0), atomic.LoadInt32(&first))
	assert.Equal(t, int32(1), atomic.LoadInt32(&second))
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus(nil)
	bus.Subscribe("ev", func(ctx context.Context, event Event) error { return nil })
	assert.Equal(t, 1, bus.GetSubscriberCount("ev"))
	bus.Unsubscribe("ev")
	assert.Equal(t, 0, bus.GetSubscriberCount("ev"))
}

func TestEventBus_GetEventTypes(t *testing.T) {
	bus := NewEventBus(nil)
	bus.Subscribe("a", func(ctx context.Context, event Event) error { return nil })
	bus.Subscribe("b", func(ctx context.Context, event Event) error { return nil })
	assert.ElementsMatch(t, []string{"a", "b"}, bus.GetEventTypes())
}

func TestEventBus_RetriesThenFails(t *testing.T) {
	bus := NewEventBusWithConfig(nil, BusConfig{MaxRetries: 2, RetryDelay: time.Millisecond})
	var attempts int32
	bus.Subscribe("flaky", func(ctx context.Context, event Event) error {
		atomic.AddInt32(&attempts, 1)
		return errors.New("boom")
	})
	err := bus.Publish(context.Background(), NewBasicEvent("flaky", nil))
	assert.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestEventBus_RetrySucceeds(t *testing.T) {
	bus := NewEventBusWithConfig(nil, BusConfig{MaxRetries: 3, RetryDelay: time.Millisecond})
	var attempts int32
	bus.Subscribe("flaky", func(ctx context.Context, event Event) error {
		if atomic.AddInt32(&attempts, 1) < 2 {
			return errors.New("transient")
		}
		return nil
	})
	assert.NoError(t, bus.Publish(context.Background(), NewBasicEvent("flaky", nil)))
}

func TestBasicEvent_Source(t *testing.T) {
	ev := NewBasicEventWithSource(EventTypeNotification, "saved", "store")
	assert.Equal(t, "store", ev.Source())
	assert.WithinDuration(t, time.Now(), ev.Timestamp(), time.Second)
	assert.Equal(t, "unknown", NewBasicEvent("x", nil).Source())
}
