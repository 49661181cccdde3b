package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/coolfootwear/storefront/internal/cart"
	"github.com/coolfootwear/storefront/internal/entity"
	"github.com/coolfootwear/storefront/internal/pricing"
	"github.com/coolfootwear/storefront/internal/storage"
)

// ProductLookup resolves a product id to its catalog record.
type ProductLookup interface {
	Product(ctx context.Context, id string) (*entity.Product, error)
}

// CartView is a cart together with its current pricing and coupon entry.
type CartView struct {
	CartProducts []entity.CartLineItem `json:"cartProducts"`
	Pricing      pricing.Snapshot      `json:"pricing"`
	Coupon       pricing.CouponState   `json:"coupon"`
}

// CartService orchestrates the cart ledger and coupon entry of each owner.
type CartService struct {
	store    storage.Store
	products ProductLookup
	locks    *ownerLocks
}

func NewCartService(store storage.Store, products ProductLookup) *CartService {
	return &CartService{
		store:    store,
		products: products,
		locks:    newOwnerLocks(),
	}
}

// View returns the owner's cart and its pricing.
func (s *CartService) View(ctx context.Context, owner string) (*CartView, error) {
	unlock := s.locks.lock(owner)
	defer unlock()

	ledger, err := cart.Load(ctx, s.store, owner)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, owner, ledger.Items())
}

// AddProduct puts one unit of the product in the cart, or bumps its quantity.
func (s *CartService) AddProduct(ctx context.Context, owner, productID string) (*CartView, error) {
	slog.Info("Service: Adding product to cart", "owner", owner, "product_id", productID)

	product, err := s.products.Product(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, owner, func(l *cart.Ledger) error {
		return l.AddProduct(ctx, entity.LineItemFromProduct(*product))
	})
}

func (s *CartService) Increment(ctx context.Context, owner, productID string) (*CartView, error) {
	return s.mutate(ctx, owner, func(l *cart.Ledger) error { return l.Increment(ctx, productID) })
}

func (s *CartService) Decrement(ctx context.Context, owner, productID string) (*CartView, error) {
	return s.mutate(ctx, owner, func(l *cart.Ledger) error { return l.Decrement(ctx, productID) })
}

func (s *CartService) Remove(ctx context.Context, owner, productID string) (*CartView, error) {
	slog.Info("Service: Removing product from cart", "owner", owner, "product_id", productID)
	return s.mutate(ctx, owner, func(l *cart.Ledger) error { return l.RemoveProduct(ctx, productID) })
}

// Clear empties the cart and forgets the coupon entry.
func (s *CartService) Clear(ctx context.Context, owner string) error {
	unlock := s.locks.lock(owner)
	defer unlock()

	ledger, err := cart.Load(ctx, s.store, owner)
	if err != nil {
		return err
	}
	if err := ledger.Clear(ctx); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, storage.CouponKey(owner)); err != nil {
		return fmt.Errorf("failed to clear coupon: %w", err)
	}
	slog.Info("Service: Cart cleared", "owner", owner)
	return nil
}

// EditCoupon records pending coupon input.
func (s *CartService) EditCoupon(ctx context.Context, owner, input string) (*CartView, error) {
	unlock := s.locks.lock(owner)
	defer unlock()

	coupon, err := s.loadCoupon(ctx, owner)
	if err != nil {
		return nil, err
	}
	if err := s.saveCoupon(ctx, owner, pricing.EditCoupon(coupon, input)); err != nil {
		return nil, err
	}
	return s.viewLoaded(ctx, owner)
}

// ApplyCoupon validates raw against the current subtotal. On rejection the view is
// still returned, carrying the coupon error, together with pricing.ErrInvalidCoupon
// or pricing.ErrCouponExceedsTotal.
func (s *CartService) ApplyCoupon(ctx context.Context, owner, raw string) (*CartView, error) {
	unlock := s.locks.lock(owner)
	defer unlock()

	ledger, err := cart.Load(ctx, s.store, owner)
	if err != nil {
		return nil, err
	}
	coupon, err := s.loadCoupon(ctx, owner)
	if err != nil {
		return nil, err
	}

	next, applyErr := pricing.ApplyCoupon(coupon, pricing.Subtotal(ledger.Items()), raw)
	if err := s.saveCoupon(ctx, owner, next); err != nil {
		return nil, err
	}

	view, err := s.view(ctx, owner, ledger.Items())
	if err != nil {
		return nil, err
	}
	return view, applyErr
}

// Quote prices the owner's cart as it stands.
func (s *CartService) Quote(ctx context.Context, owner string) ([]entity.CartLineItem, pricing.Snapshot, error) {
	view, err := s.View(ctx, owner)
	if err != nil {
		return nil, pricing.Snapshot{}, err
	}
	return view.CartProducts, view.Pricing, nil
}

func (s *CartService) mutate(ctx context.Context, owner string, fn func(*cart.Ledger) error) (*CartView, error) {
	unlock := s.locks.lock(owner)
	defer unlock()

	ledger, err := cart.Load(ctx, s.store, owner)
	if err != nil {
		return nil, err
	}
	if err := fn(ledger); err != nil {
		return nil, err
	}
	return s.view(ctx, owner, ledger.Items())
}

func (s *CartService) viewLoaded(ctx context.Context, owner string) (*CartView, error) {
	ledger, err := cart.Load(ctx, s.store, owner)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, owner, ledger.Items())
}

func (s *CartService) view(ctx context.Context, owner string, items []entity.CartLineItem) (*CartView, error) {
	coupon, err := s.loadCoupon(ctx, owner)
	if err != nil {
		return nil, err
	}
	return &CartView{
		CartProducts: items,
		Pricing:      pricing.Quote(items, coupon.Discount),
		Coupon:       coupon,
	}, nil
}

func (s *CartService) loadCoupon(ctx context.Context, owner string) (pricing.CouponState, error) {
	var coupon pricing.CouponState
	blob, err := s.store.Load(ctx, storage.CouponKey(owner))
	if errors.Is(err, storage.ErrNotFound) {
		return coupon, nil
	}
	if err != nil {
		return coupon, fmt.Errorf("failed to load coupon: %w", err)
	}
	if err := json.Unmarshal(blob, &coupon); err != nil {
		slog.Warn("Discarding unreadable coupon data", "owner", owner, "err", err)
		return pricing.CouponState{}, nil
	}
	return coupon, nil
}

func (s *CartService) saveCoupon(ctx context.Context, owner string, coupon pricing.CouponState) error {
	blob, err := json.Marshal(coupon)
	if err != nil {
		return fmt.Errorf("failed to marshal coupon: %w", err)
	}
	if err := s.store.Save(ctx, storage.CouponKey(owner), blob); err != nil {
		return fmt.Errorf("failed to persist coupon: %w", err)
	}
	return nil
}
