// Package memory provides process-local repositories for development runs and tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/coolfootwear/storefront/internal/entity"
	"github.com/coolfootwear/storefront/internal/repository"
)

type ProductRepository struct {
	mu       sync.RWMutex
	products []entity.Product
}

func NewProductRepository(products ...entity.Product) *ProductRepository {
	return &ProductRepository{products: slices.Clone(products)}
}

func (r *ProductRepository) FindAll(_ context.Context) ([]entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.products), nil
}

func (r *ProductRepository) FindByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.index(id); i >= 0 {
		p := r.products[i]
		return &p, nil
	}
	return nil, nil
}

func (r *ProductRepository) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index(p.ID) >= 0 {
		return fmt.Errorf("product %s already exists", p.ID)
	}
	r.products = append(r.products, *p)
	return nil
}

func (r *ProductRepository) Update(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(p.ID)
	if i < 0 {
		return repository.ErrNotFound
	}
	r.products[i] = *p
	return nil
}

func (r *ProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	r.products = slices.Delete(r.products, i, i+1)
	return nil
}

func (r *ProductRepository) Seed(ctx context.Context, products []entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.products) == 0 {
		r.products = slices.Clone(products)
	}
	return nil
}

func (r *ProductRepository) index(id string) int {
	return slices.IndexFunc(r.products, func(p entity.Product) bool { return p.ID == id })
}

type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]entity.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[string]entity.Order)}
}

func (r *OrderRepository) UpdateOrderProjection(_ context.Context, event entity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch e := event.(type) {
	case entity.OrderPlaced:
		if _, ok := r.orders[e.Order.ID]; ok {
			return nil
		}
		o := e.Order
		o.Status = entity.OrderStatusPlaced
		o.Products = slices.Clone(o.Products)
		r.orders[o.ID] = o
	case entity.OrderConfirmed:
		if o, ok := r.orders[e.OrderID]; ok {
			o.Status = entity.OrderStatusConfirmed
			r.orders[e.OrderID] = o
		}
	case entity.OrderDeleted:
		delete(r.orders, e.OrderID)
	default:
		return fmt.Errorf("unsupported projection event: %s", event.EventType())
	}
	return nil
}

func (r *OrderRepository) FindAll(_ context.Context) ([]entity.Order, error) {
	return r.filter(func(entity.Order) bool { return true }), nil
}

func (r *OrderRepository) FindByUser(_ context.Context, userID string) ([]entity.Order, error) {
	return r.filter(func(o entity.Order) bool { return o.UserID == userID }), nil
}

func (r *OrderRepository) FindByID(_ context.Context, id string) (*entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &o, nil
}

func (r *OrderRepository) filter(keep func(entity.Order) bool) []entity.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []entity.Order{}
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	slices.SortFunc(out, func(a, b entity.Order) int {
		if c := b.OrderedAt.Compare(a.OrderedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

type UserRepository struct {
	mu    sync.RWMutex
	users []entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if slices.ContainsFunc(r.users, func(x entity.User) bool { return strings.EqualFold(x.Email, u.Email) }) {
		return repository.ErrEmailExists
	}
	stored := *u
	stored.Email = strings.ToLower(stored.Email)
	r.users = append(r.users, stored)
	return nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.ID == id })
}

func (r *UserRepository) find(match func(entity.User) bool) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := slices.IndexFunc(r.users, match); i >= 0 {
		u := r.users[i]
		return &u, nil
	}
	return nil, repository.ErrNotFound
}

// FindAll returns users newest first.
func (r *UserRepository) FindAll(_ context.Context) ([]entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := slices.Clone(r.users)
	slices.Reverse(out)
	return out, nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.IndexFunc(r.users, func(u entity.User) bool { return u.ID == id })
	if i < 0 {
		return repository.ErrNotFound
	}
	r.users = slices.Delete(r.users, i, i+1)
	return nil
}

// EventStore keeps event streams in memory with the same version checks as the Postgres store.
type EventStore struct {
	mu      sync.Mutex
	streams map[string][]entity.EventStoreRecord
}

func NewEventStore() *EventStore {
	return &EventStore{streams: make(map[string][]entity.EventStoreRecord)}
}

func streamKey(streamType, streamID string) string {
	return streamType + "/" + streamID
}

func (s *EventStore) Append(_ context.Context, streamType, streamID string, expectedVersion int, events ...entity.Event) error {
	if len(events) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := streamKey(streamType, streamID)
	stream := s.streams[key]
	if err := repository.CheckVersion(streamType, streamID, expectedVersion, len(stream)); err != nil {
		return err
	}

	records, err := entity.NewRecords(streamType, streamID, expectedVersion, time.Now(), uuid.NewString, events...)
	if err != nil {
		return err
	}
	s.streams[key] = append(stream, records...)
	return nil
}

func (s *EventStore) Load(_ context.Context, streamType, streamID string) ([]entity.EventStoreRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.streams[streamKey(streamType, streamID)]), nil
}

var (
	_ repository.ProductRepository = (*ProductRepository)(nil)
	_ repository.OrderRepository   = (*OrderRepository)(nil)
	_ repository.UserRepository    = (*UserRepository)(nil)
	_ repository.EventStore        = (*EventStore)(nil)
)
