package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/coolfootwear/storefront/internal/entity"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrEmailExists     = errors.New("email already exists")
	ErrVersionMismatch = errors.New("concurrency exception")
)

// ProductRepository handles persistence for Products.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]entity.Product, error)
	// FindByID returns nil, nil when the product does not exist.
	FindByID(ctx context.Context, id string) (*entity.Product, error)
	Create(ctx context.Context, p *entity.Product) error
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
	// Seed inserts initial products if none exist.
	Seed(ctx context.Context, products []entity.Product) error
}

// OrderRepository is the read model built from order events.
type OrderRepository interface {
	UpdateOrderProjection(ctx context.Context, event entity.Event) error
	// FindAll returns every order, newest first.
	FindAll(ctx context.Context) ([]entity.Order, error)
	FindByUser(ctx context.Context, userID string) ([]entity.Order, error)
	FindByID(ctx context.Context, id string) (*entity.Order, error)
}

// UserRepository handles persistence for registered users.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindAll(ctx context.Context) ([]entity.User, error)
	Delete(ctx context.Context, id string) error
}

// EventStore appends to and reads event streams. A stream is addressed by its type and
// id; expectedVersion is the number of events the caller has already seen.
type EventStore interface {
	Append(ctx context.Context, streamType, streamID string, expectedVersion int, events ...entity.Event) error
	Load(ctx context.Context, streamType, streamID string) ([]entity.EventStoreRecord, error)
}

// CheckVersion returns ErrVersionMismatch unless the stream is at the version the
// writer expects.
func CheckVersion(streamType, streamID string, expected, current int) error {
	if expected < 0 {
		return fmt.Errorf("%w: negative expected version %d for %s/%s", ErrVersionMismatch, expected, streamType, streamID)
	}
	if expected != current {
		return fmt.Errorf("%w: %s/%s expected version %d, got %d", ErrVersionMismatch, streamType, streamID, expected, current)
	}
	return nil
}
