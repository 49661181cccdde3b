package service

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/coolfootwear/storefront/internal/catalog"
	"github.com/coolfootwear/storefront/internal/entity"
	"github.com/coolfootwear/storefront/internal/repository/memory"
	"github.com/coolfootwear/storefront/internal/storage"
)

type published struct {
	topic string
	key   string
	event any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic string, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, published{topic: topic, key: key, event: event})
	return nil
}

func (p *recordingPublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.topic)
	}
	return out
}

func testProducts() []entity.Product {
	return []entity.Product{
		{ID: "p1", Title: "Air Zoom Runner", ImageURL: "img/p1.png", Price: decimal.NewFromInt(1299), Category: "Male", Brand: "Nike"},
		{ID: "p2", Title: "Block Heel Sandal", ImageURL: "img/p2.png", Price: decimal.NewFromInt(99), Category: "Female", Brand: "Metro"},
	}
}

type fixture struct {
	store     *storage.MemoryStore
	carts     *CartService
	wishlists *WishlistService
	users     *memory.UserRepository
	orders    *memory.OrderRepository
	events    *memory.EventStore
	publisher *recordingPublisher
	orderSvc  *OrderService
}

func newFixture() *fixture {
	store := storage.NewMemoryStore()
	f := &fixture{
		store:     store,
		carts:     NewCartService(store, catalog.NewCache(memory.NewProductRepository(testProducts()...))),
		wishlists: NewWishlistService(store),
		users:     memory.NewUserRepository(),
		orders:    memory.NewOrderRepository(),
		events:    memory.NewEventStore(),
		publisher: &recordingPublisher{},
	}
	f.orderSvc = NewOrderService(f.orders, f.events, f.publisher)
	return f
}
