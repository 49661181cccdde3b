package service

import (
	"context"

	"github.com/coolfootwear/storefront/internal/storage"
	"github.com/coolfootwear/storefront/internal/wishlist"
)

// WishlistService serializes wishlist edits per owner.
type WishlistService struct {
	store storage.Store
	locks *ownerLocks
}

func NewWishlistService(store storage.Store) *WishlistService {
	return &WishlistService{store: store, locks: newOwnerLocks()}
}

func (s *WishlistService) Items(ctx context.Context, owner string) ([]string, error) {
	list, err := wishlist.Load(ctx, s.store, owner)
	if err != nil {
		return nil, err
	}
	return list.Items(), nil
}

func (s *WishlistService) Add(ctx context.Context, owner, productID string) ([]string, error) {
	return s.mutate(ctx, owner, func(l *wishlist.List) error { return l.Add(ctx, productID) })
}

func (s *WishlistService) Remove(ctx context.Context, owner, productID string) ([]string, error) {
	return s.mutate(ctx, owner, func(l *wishlist.List) error { return l.Remove(ctx, productID) })
}

func (s *WishlistService) Toggle(ctx context.Context, owner, productID string) ([]string, error) {
	return s.mutate(ctx, owner, func(l *wishlist.List) error {
		_, err := l.Toggle(ctx, productID)
		return err
	})
}

func (s *WishlistService) Clear(ctx context.Context, owner string) error {
	_, err := s.mutate(ctx, owner, func(l *wishlist.List) error { return l.Clear(ctx) })
	return err
}

func (s *WishlistService) mutate(ctx context.Context, owner string, fn func(*wishlist.List) error) ([]string, error) {
	unlock := s.locks.lock(owner)
	defer unlock()

	list, err := wishlist.Load(ctx, s.store, owner)
	if err != nil {
		return nil, err
	}
	if err := fn(list); err != nil {
		return nil, err
	}
	return list.Items(), nil
}
