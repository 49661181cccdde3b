package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/coolfootwear/storefront/internal/entity"
	"github.com/coolfootwear/storefront/internal/messaging"
	"github.com/coolfootwear/storefront/internal/repository"
)

var (
	ErrEmptyOrder   = errors.New("order must have at least one product")
	ErrInvalidOrder = errors.New("order is missing its id or user")
)

// OrderService orchestrates order-related business logic.
type OrderService struct {
	orderRepo  repository.OrderRepository // read model
	eventStore repository.EventStore
	publisher  messaging.Publisher
	now        func() time.Time
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	eventStore repository.EventStore,
	publisher messaging.Publisher,
) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		eventStore: eventStore,
		publisher:  publisher,
		now:        time.Now,
	}
}

// PlaceOrder records a paid order. Placing an order id twice is a no-op.
func (s *OrderService) PlaceOrder(ctx context.Context, cmd *entity.PlaceOrder) error {
	order := cmd.Order
	slog.Info("Service: Placing order", "order_id", order.ID, "products", len(order.Products))

	if order.ID == "" || order.UserID == "" {
		return ErrInvalidOrder
	}
	if len(order.Products) == 0 {
		return ErrEmptyOrder
	}

	records, err := s.eventStore.Load(ctx, entity.OrderStream, order.ID)
	if err != nil {
		return fmt.Errorf("failed to load order history: %w", err)
	}
	if len(records) > 0 {
		slog.Info("Order already exists (idempotency)", "order_id", order.ID)
		return nil
	}

	placedEvent := entity.OrderPlaced{
		Order:    order,
		PlacedAt: s.now(),
	}
	placedEvent.Order.Status = entity.OrderStatusPlaced
	if placedEvent.Order.OrderedAt.IsZero() {
		placedEvent.Order.OrderedAt = placedEvent.PlacedAt
	}

	if err := s.eventStore.Append(ctx, entity.OrderStream, order.ID, 0, placedEvent); err != nil {
		return fmt.Errorf("failed to save OrderPlaced event: %w", err)
	}

	// The read model is updated before returning so the order shows up in
	// the customer's history right away.
	if err := s.orderRepo.UpdateOrderProjection(ctx, placedEvent); err != nil {
		return fmt.Errorf("failed to project OrderPlaced: %w", err)
	}

	if err := s.publisher.PublishEvent(ctx, messaging.TopicOrderPlaced, order.ID, placedEvent); err != nil {
		slog.Error("Failed to publish OrderPlaced, order stays unconfirmed", "order_id", order.ID, "err", err)
	}
	return nil
}

// HandleOrderPlaced is triggered by the message broker when an order is placed.
func (s *OrderService) HandleOrderPlaced(ctx context.Context, event *entity.OrderPlaced) error {
	orderID := event.Order.ID
	slog.Info("Service: Confirming order", "order_id", orderID)

	if err := s.orderRepo.UpdateOrderProjection(ctx, *event); err != nil {
		slog.Error("Failed to update projection for OrderPlaced", "err", err)
	}

	aggregate, err := s.load(ctx, orderID)
	if err != nil {
		return err
	}
	if aggregate.Deleted {
		slog.Info("Order deleted before confirmation", "order_id", orderID)
		return nil
	}
	if aggregate.Status() == entity.OrderStatusConfirmed {
		slog.Info("Order already confirmed", "order_id", orderID)
		return nil
	}

	confirmedEvent := entity.OrderConfirmed{
		OrderID:     orderID,
		ConfirmedAt: s.now(),
	}

	err = s.eventStore.Append(ctx, entity.OrderStream, orderID, aggregate.Version, confirmedEvent)
	if err != nil {
		return fmt.Errorf("failed to save OrderConfirmed event: %w", err)
	}

	if err := s.publisher.PublishEvent(ctx, messaging.TopicOrderConfirmed, orderID, confirmedEvent); err != nil {
		slog.Error("Failed to publish OrderConfirmed", "err", err)
	}

	slog.Info("Order confirmed", "order_id", orderID)
	return nil
}

// HandleOrderConfirmed updates the read model when an order is confirmed.
func (s *OrderService) HandleOrderConfirmed(ctx context.Context, event *entity.OrderConfirmed) error {
	slog.Info("Projection: Updating OrderConfirmed", "order_id", event.OrderID)
	return s.orderRepo.UpdateOrderProjection(ctx, *event)
}

// UserOrders returns a customer's orders, newest first.
func (s *OrderService) UserOrders(ctx context.Context, userID string) ([]entity.Order, error) {
	return s.orderRepo.FindByUser(ctx, userID)
}

// Orders lists every order for the back office, optionally narrowed to those whose
// id, customer name, email or phone contains term.
func (s *OrderService) Orders(ctx context.Context, term string) ([]entity.Order, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return orders, nil
	}

	out := []entity.Order{}
	for _, o := range orders {
		if strings.Contains(strings.ToLower(o.ID), term) ||
			strings.Contains(strings.ToLower(o.Customer.FullName()), term) ||
			strings.Contains(strings.ToLower(o.Customer.Email), term) ||
			strings.Contains(o.Customer.PhoneNo, term) {
			out = append(out, o)
		}
	}
	return out, nil
}

// DeleteOrder appends OrderDeleted and drops the order from the read model.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID string) error {
	slog.Info("Service: Deleting order", "order_id", orderID)

	aggregate, err := s.load(ctx, orderID)
	if err != nil {
		return err
	}
	if !aggregate.Exists() || aggregate.Deleted {
		return repository.ErrNotFound
	}

	deletedEvent := entity.OrderDeleted{OrderID: orderID, DeletedAt: s.now()}
	if err := s.eventStore.Append(ctx, entity.OrderStream, orderID, aggregate.Version, deletedEvent); err != nil {
		return fmt.Errorf("failed to save OrderDeleted event: %w", err)
	}
	if err := s.orderRepo.UpdateOrderProjection(ctx, deletedEvent); err != nil {
		return fmt.Errorf("failed to project OrderDeleted: %w", err)
	}

	if err := s.publisher.PublishEvent(ctx, messaging.TopicOrderDeleted, orderID, deletedEvent); err != nil {
		slog.Error("Failed to publish OrderDeleted", "err", err)
	}
	return nil
}

func (s *OrderService) load(ctx context.Context, orderID string) (*entity.OrderAggregate, error) {
	records, err := s.eventStore.Load(ctx, entity.OrderStream, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order events: %w", err)
	}

	aggregate := entity.NewOrderAggregate(orderID)
	if err := aggregate.Rehydrate(records); err != nil {
		return nil, fmt.Errorf("failed to rehydrate order aggregate: %w", err)
	}
	return aggregate, nil
}
