// Package catalog serves the product listing: it caches the product list fetched from a
// Source and filters, sorts and paginates it per request.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/coolfootwear/storefront/internal/entity"
	"github.com/coolfootwear/storefront/internal/pagination"
)

// ErrProductNotFound is returned when a product id is unknown.
var ErrProductNotFound = errors.New("product not found")

// Source supplies product records.
type Source interface {
	FindAll(ctx context.Context) ([]entity.Product, error)
	FindByID(ctx context.Context, id string) (*entity.Product, error)
}

// Page is one page of a filtered, sorted listing.
type Page struct {
	Items      []entity.Product `json:"items"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
	PageRange  [2]int           `json:"pageRange"`
	TotalItems int              `json:"totalItems"`
	Filters    Filters          `json:"filters"`
}

// Cache holds the product list after the first fetch until Invalidate is called.
type Cache struct {
	source Source

	mu       sync.RWMutex
	products []entity.Product
	loaded   bool
}

func NewCache(source Source) *Cache {
	return &Cache{source: source}
}

// Products returns the cached list, fetching it from the source on first use.
func (c *Cache) Products(ctx context.Context) ([]entity.Product, error) {
	c.mu.RLock()
	if c.loaded {
		products := c.products
		c.mu.RUnlock()
		return products, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return c.products, nil
	}

	products, err := c.source.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	slog.Info("Catalog loaded", "products", len(products))

	c.products = products
	c.loaded = true
	return products, nil
}

// Product looks up one product, preferring the cached list.
func (c *Cache) Product(ctx context.Context, id string) (*entity.Product, error) {
	products, err := c.Products(ctx)
	if err != nil {
		return nil, err
	}
	if i := slices.IndexFunc(products, func(p entity.Product) bool { return p.ID == id }); i >= 0 {
		p := products[i]
		return &p, nil
	}

	p, err := c.source.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// Invalidate drops the cached list so the next read refetches it.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = nil
	c.loaded = false
}

// Browse filters and sorts the catalog and returns the requested page. Pages past the end
// are clamped to the last page.
func (c *Cache) Browse(ctx context.Context, filters Filters, page int) (*Page, error) {
	products, err := c.Products(ctx)
	if err != nil {
		return nil, err
	}

	filtered := filters.Apply(products)
	window := pagination.NewWindow(len(filtered))
	if page > window.TotalPages {
		page = window.TotalPages
	}
	window.SelectPage(page)

	return &Page{
		Items:      pagination.Slice(filtered, window.Page),
		Page:       window.Page,
		TotalPages: window.TotalPages,
		PageRange:  window.PageRange,
		TotalItems: len(filtered),
		Filters:    filters,
	}, nil
}
