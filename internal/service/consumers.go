package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coolfootwear/storefront/internal/entity"
	"github.com/coolfootwear/storefront/internal/messaging"
)

// Subscription binds a topic and consumer group to a handler.
type Subscription struct {
	Topic   string
	GroupID string
	Handler messaging.Handler
}

// Subscriptions returns the order consumers: orders.placed confirms the order and
// orders.confirmed updates the read model.
func (s *OrderService) Subscriptions() []Subscription {
	return []Subscription{
		{
			Topic:   messaging.TopicOrderPlaced,
			GroupID: "storefront-placed",
			Handler: func(ctx context.Context, payload []byte) error {
				var event entity.OrderPlaced
				if err := json.Unmarshal(payload, &event); err != nil {
					return fmt.Errorf("failed to unmarshal OrderPlaced event: %w", err)
				}
				return s.HandleOrderPlaced(ctx, &event)
			},
		},
		{
			Topic:   messaging.TopicOrderConfirmed,
			GroupID: "storefront-confirmed",
			Handler: func(ctx context.Context, payload []byte) error {
				var event entity.OrderConfirmed
				if err := json.Unmarshal(payload, &event); err != nil {
					return fmt.Errorf("failed to unmarshal OrderConfirmed event: %w", err)
				}
				return s.HandleOrderConfirmed(ctx, &event)
			},
		},
	}
}
