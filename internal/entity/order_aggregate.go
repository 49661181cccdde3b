package entity

import "fmt"

// OrderAggregate is an order rebuilt from its event stream.
type OrderAggregate struct {
	ID      string
	Version int
	Order   Order
	Deleted bool
}

func NewOrderAggregate(id string) *OrderAggregate {
	return &OrderAggregate{ID: id}
}

// Exists reports whether the order has been placed.
func (a *OrderAggregate) Exists() bool {
	return a.Version > 0
}

// Status returns the current lifecycle status, "pending" before any event.
func (a *OrderAggregate) Status() string {
	if a.Order.Status == "" {
		return "pending"
	}
	return a.Order.Status
}

// ApplyEvent folds one event into the order.
func (a *OrderAggregate) ApplyEvent(e Event) error {
	switch e := e.(type) {
	case OrderPlaced:
		if a.Exists() {
			return fmt.Errorf("order %s placed twice", a.ID)
		}
		a.Order = e.Order
		a.Order.Status = OrderStatusPlaced
		if a.Order.OrderedAt.IsZero() {
			a.Order.OrderedAt = e.PlacedAt
		}
	case OrderConfirmed:
		a.Order.Status = OrderStatusConfirmed
	case OrderDeleted:
		a.Deleted = true
	default:
		return fmt.Errorf("unknown event type for order: %s", e.EventType())
	}
	a.Version++
	return nil
}

// Rehydrate replays records in version order. A gap or a record from another stream
// is an error.
func (a *OrderAggregate) Rehydrate(records []EventStoreRecord) error {
	for _, rec := range records {
		if rec.StreamID != a.ID {
			return fmt.Errorf("record %s belongs to stream %s, not %s", rec.ID, rec.StreamID, a.ID)
		}
		if rec.Version != a.Version+1 {
			return fmt.Errorf("order %s: expected version %d, found %d", a.ID, a.Version+1, rec.Version)
		}
		event, err := DecodeOrderEvent(rec)
		if err != nil {
			return err
		}
		if err := a.ApplyEvent(event); err != nil {
			return fmt.Errorf("failed to apply event from stream: %w", err)
		}
	}
	return nil
}
