// Package wishlist keeps an owner's saved product ids, persisted after every change.
package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/coolfootwear/storefront/internal/storage"
)

// List is one owner's wishlist.
type List struct {
	store storage.Store
	key   string
	items []string
}

// Load restores the owner's wishlist. Unreadable data yields an empty list.
func Load(ctx context.Context, store storage.Store, owner string) (*List, error) {
	l := &List{store: store, key: storage.WishlistKey(owner), items: []string{}}

	blob, err := store.Load(ctx, l.key)
	if errors.Is(err, storage.ErrNotFound) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load wishlist: %w", err)
	}

	var items []string
	if err := json.Unmarshal(blob, &items); err != nil {
		slog.Warn("Error loading wishlist, starting empty", "key", l.key, "err", err)
		return l, nil
	}
	if items != nil {
		l.items = items
	}
	return l, nil
}

// Items returns the saved ids in the order they were added.
func (l *List) Items() []string {
	return slices.Clone(l.items)
}

func (l *List) Contains(id string) bool {
	return slices.Contains(l.items, id)
}

// Add saves id unless it is already present.
func (l *List) Add(ctx context.Context, id string) error {
	if l.Contains(id) {
		return l.persist(ctx, l.items)
	}
	return l.persist(ctx, append(slices.Clone(l.items), id))
}

func (l *List) Remove(ctx context.Context, id string) error {
	next := slices.DeleteFunc(slices.Clone(l.items), func(item string) bool { return item == id })
	return l.persist(ctx, next)
}

// Toggle removes id when present and adds it otherwise. It reports whether id is now saved.
func (l *List) Toggle(ctx context.Context, id string) (bool, error) {
	if l.Contains(id) {
		return false, l.Remove(ctx, id)
	}
	return true, l.Add(ctx, id)
}

func (l *List) Clear(ctx context.Context) error {
	return l.persist(ctx, []string{})
}

func (l *List) persist(ctx context.Context, items []string) error {
	blob, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal wishlist: %w", err)
	}
	if err := l.store.Save(ctx, l.key, blob); err != nil {
		return fmt.Errorf("failed to persist wishlist: %w", err)
	}
	l.items = items
	return nil
}
