package ports

import (
	"context"
	"time"
)

// Topic name builders. Topics address live-update channels: a user's own
// channel, a role-wide broadcast, or a single order's tracking channel.
func UserTopic(userID string) string   { return "user:" + userID }
func RoleTopic(role string) string     { return "role:" + role }
func OrderTopic(orderID string) string { return "order:" + orderID }

// Event is one immutable record on the bus. Payload contents are
// read-only after publication.
type Event struct {
	Topic     string
	Type      string
	Payload   map[string]any
	Timestamp time.Time
}

// EventPublisher is the write side of the event bus. Publish hands the event
// to the bus synchronously with respect to the triggering state change;
// delivery to subscribers is asynchronous and best-effort. The bus is an
// optimization, not a source of truth; clients needing certainty poll the
// order store.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// EventBus adds the subscribe side: a per-subscriber stream for one topic.
// At-most-once, in-order per topic; a disconnected or slow subscriber simply
// misses events. Cancel releases the subscription and closes the stream.
type EventBus interface {
	EventPublisher

	Subscribe(topic string) (events <-chan Event, cancel func())
}
