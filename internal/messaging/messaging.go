package messaging

import "context"

// Topics carrying order lifecycle events.
const (
	TopicOrderPlaced    = "orders.placed"
	TopicOrderConfirmed = "orders.confirmed"
	TopicOrderDeleted   = "orders.deleted"
)

// Handler processes one message payload.
type Handler func(ctx context.Context, payload []byte) error

// Publisher defines an interface for publishing events to a message broker.
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, key string, event any) error
}

// Subscriber defines an interface for subscribing to a message topic.
// Consume blocks until ctx is cancelled.
type Subscriber interface {
	Consume(ctx context.Context, topic string, groupID string, handler Handler)
}
