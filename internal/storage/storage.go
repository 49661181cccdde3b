// Package storage holds the durable keyed blobs backing carts, wishlists and checkouts.
// Each key is overwritten wholesale on every write.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when nothing is stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// Store persists opaque blobs by key.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// CartKey is the storage key of an owner's cart line items.
func CartKey(owner string) string {
	return "cartData:" + owner
}

// WishlistKey is the storage key of an owner's wishlist ids.
func WishlistKey(owner string) string {
	return "wishlist:" + owner
}

// CouponKey is the storage key of an owner's coupon entry.
func CouponKey(owner string) string {
	return "coupon:" + owner
}

// CheckoutKey is the storage key of an owner's checkout awaiting payment.
func CheckoutKey(owner string) string {
	return "checkout:" + owner
}
