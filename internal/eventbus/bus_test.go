package eventbus_test

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/eventbus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus() *eventbus.Bus {
	return eventbus.NewBus(slog.Default())
}

func TestBus_PublishAndSubscribe(t *testing.T) {
	t.Run("subscriber receives published event", func(t *testing.T) {
		bus := newTestBus()
		defer bus.Stop()

		events, cancel := bus.Subscribe(ports.OrderTopic("42"))
		defer cancel()

		published := ports.Event{
			Topic:     ports.OrderTopic("42"),
			Type:      "order.status_changed",
			Payload:   map[string]any{"status": "READY"},
			Timestamp: time.Now(),
		}
		require.NoError(t, bus.Publish(t.Context(), published))

		select {
		case got := <-events:
			assert.Equal(t, published.Type, got.Type)
			assert.Equal(t, "READY", got.Payload["status"])
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	})

	t.Run("events stay within their topic", func(t *testing.T) {
		bus := newTestBus()
		defer bus.Stop()

		orderEvents, cancelOrder := bus.Subscribe(ports.OrderTopic("1"))
		defer cancelOrder()
		roleEvents, cancelRole := bus.Subscribe(ports.RoleTopic("operator"))
		defer cancelRole()

		require.NoError(t, bus.Publish(t.Context(), ports.Event{
			Topic: ports.RoleTopic("operator"),
			Type:  "dispatch.failed",
		}))

		select {
		case <-roleEvents:
		case <-time.After(time.Second):
			t.Fatal("role subscriber did not receive event")
		}
		select {
		case e := <-orderEvents:
			t.Fatalf("order subscriber received foreign event: %v", e)
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("events are delivered in publish order per topic", func(t *testing.T) {
		bus := newTestBus()
		defer bus.Stop()

		events, cancel := bus.Subscribe(ports.UserTopic("u1"))
		defer cancel()

		for i := range 5 {
			require.NoError(t, bus.Publish(t.Context(), ports.Event{
				Topic:   ports.UserTopic("u1"),
				Type:    "seq",
				Payload: map[string]any{"i": i},
			}))
		}

		for i := range 5 {
			select {
			case got := <-events:
				assert.Equal(t, i, got.Payload["i"])
			case <-time.After(time.Second):
				t.Fatalf("timed out waiting for event %d", i)
			}
		}
	})

	t.Run("publish without subscribers succeeds", func(t *testing.T) {
		bus := newTestBus()
		defer bus.Stop()

		require.NoError(t, bus.Publish(t.Context(), ports.Event{
			Topic: ports.OrderTopic("nobody-listens"),
			Type:  "order.placed",
		}))
	})
}

func TestBus_SlowSubscriber(t *testing.T) {
	t.Run("slow subscriber misses events instead of blocking publisher", func(t *testing.T) {
		bus := newTestBus()
		defer bus.Stop()

		events, cancel := bus.Subscribe(ports.OrderTopic("slow"))
		defer cancel()

		// Never consumed; well beyond any reasonable buffer.
		for i := range 100 {
			require.NoError(t, bus.Publish(t.Context(), ports.Event{
				Topic:   ports.OrderTopic("slow"),
				Type:    fmt.Sprintf("event-%d", i),
			}))
		}

		// The buffer holds a prefix of the stream, in order.
		first := <-events
		assert.Equal(t, "event-0", first.Type)
	})
}

func TestBus_Lifecycle(t *testing.T) {
	t.Run("cancel detaches the subscriber and closes the stream", func(t *testing.T) {
		bus := newTestBus()
		defer bus.Stop()

		events, cancel := bus.Subscribe(ports.OrderTopic("1"))
		cancel()
		cancel() // safe to call twice

		_, open := <-events
		assert.False(t, open)

		require.NoError(t, bus.Publish(t.Context(), ports.Event{Topic: ports.OrderTopic("1")}))
	})

	t.Run("publish after stop fails", func(t *testing.T) {
		bus := newTestBus()
		bus.Stop()

		err := bus.Publish(t.Context(), ports.Event{Topic: "x"})
		require.ErrorIs(t, err, eventbus.ErrBusStopped)
	})

	t.Run("stop closes subscriber streams", func(t *testing.T) {
		bus := newTestBus()
		events, _ := bus.Subscribe(ports.UserTopic("u"))

		bus.Stop()

		_, open := <-events
		assert.False(t, open)
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		bus := newTestBus()
		bus.Stop()
		bus.Stop()
	})
}
