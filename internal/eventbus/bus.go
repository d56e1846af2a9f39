// Package eventbus provides the in-process publish/subscribe fan-out that
// keeps customers, couriers and operators synchronized. Delivery is
// at-most-once, best-effort and in-order per topic; there is no replay and
// no durable queue. The bus is injected where needed and its lifecycle is
// owned by the server process; there is deliberately no global registry.
package eventbus

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"fooddelivery/internal/core/ports"
)

// ErrBusStopped is returned by Publish after Stop.
var ErrBusStopped = errors.New("event bus is stopped")

// defaultSubscriberBuffer bounds how far a subscriber may lag before it
// starts missing events.
const defaultSubscriberBuffer = 16

type subscriber struct {
	topic string
	ch    chan ports.Event
}

// Bus is a topic-keyed fan-out. Publish hands the event to every current
// subscriber of the topic synchronously (a buffered enqueue); subscribers
// consume asynchronously. A subscriber whose buffer is full misses the
// event; slow consumers never block publishers or each other.
//
// Bus is safe for concurrent use.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]*subscriber
	stopped     bool
	bufferSize  int
	logger      *slog.Logger
}

// NewBus creates a started Bus.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		subscribers: make(map[string][]*subscriber),
		bufferSize:  defaultSubscriberBuffer,
		logger:      logger.With("component", "event_bus"),
	}
}

// Publish enqueues the event for every subscriber of its topic. The enqueue
// happens before Publish returns; actual consumption is the subscriber's
// business. Returns ErrBusStopped after Stop.
func (b *Bus) Publish(ctx context.Context, event ports.Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.stopped {
		return ErrBusStopped
	}

	for _, sub := range b.subscribers[event.Topic] {
		select {
		case sub.ch <- event:
		default:
			// Subscriber buffer full: at-most-once means this one misses out.
			b.logger.WarnContext(ctx, "dropping event for slow subscriber",
				"topic", event.Topic, "type", event.Type)
		}
	}
	return nil
}

// Subscribe attaches a new subscriber to a topic. The returned cancel
// function detaches the subscriber and closes its stream; it is safe to call
// more than once.
func (b *Bus) Subscribe(topic string) (<-chan ports.Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &subscriber{topic: topic, ch: make(chan ports.Event, b.bufferSize)}
	if b.stopped {
		close(sub.ch)
		return sub.ch, func() {}
	}

	b.subscribers[topic] = append(b.subscribers[topic], sub)

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			b.detach(sub)
		})
	}
	return sub.ch, cancel
}

// Stop closes every subscriber stream and rejects further publishes.
func (b *Bus) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.stopped {
		return
	}
	b.stopped = true

	for _, subs := range b.subscribers {
		for _, sub := range subs {
			close(sub.ch)
		}
	}
	b.subscribers = make(map[string][]*subscriber)
}

// detach removes a subscriber; the caller holds the write lock.
func (b *Bus) detach(target *subscriber) {
	if b.stopped {
		return
	}

	subs := b.subscribers[target.topic]
	for i, sub := range subs {
		if sub == target {
			b.subscribers[target.topic] = append(subs[:i], subs[i+1:]...)
			close(target.ch)
			break
		}
	}
	if len(b.subscribers[target.topic]) == 0 {
		delete(b.subscribers, target.topic)
	}
}
