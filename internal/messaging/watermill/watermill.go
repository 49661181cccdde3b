// Package watermill routes events through an in-process watermill pub/sub,
// used when no Kafka brokers are configured.
package watermill

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/coolfootwear/storefront/internal/messaging"
)

const keyMetadata = "key"

// Broker wraps a gochannel pub/sub. Messages published before any
// subscriber exists on a topic are dropped.
type Broker struct {
	pubSub *gochannel.GoChannel
}

func NewBroker(logger *slog.Logger) *Broker {
	return &Broker{
		pubSub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 64},
			watermill.NewSlogLogger(logger),
		),
	}
}

func (b *Broker) PublishEvent(_ context.Context, topic string, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(keyMetadata, key)

	if err := b.pubSub.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// Consume subscribes to topic and handles messages until ctx is done.
// gochannel has no consumer groups, so groupID is only logged.
func (b *Broker) Consume(ctx context.Context, topic string, groupID string, handler messaging.Handler) {
	messages, err := b.pubSub.Subscribe(ctx, topic)
	if err != nil {
		slog.Error("Failed to subscribe", "topic", topic, "group", groupID, "err", err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("Consumer shutting down", "topic", topic)
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			if err := handler(ctx, msg.Payload); err != nil {
				slog.Error("Error handling message", "topic", topic, "key", msg.Metadata.Get(keyMetadata), "err", err)
			}
			msg.Ack()
		}
	}
}

func (b *Broker) Close() error {
	return b.pubSub.Close()
}

var (
	_ messaging.Publisher  = (*Broker)(nil)
	_ messaging.Subscriber = (*Broker)(nil)
)
