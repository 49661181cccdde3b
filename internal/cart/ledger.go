package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/coolfootwear/storefront/internal/entity"
	"github.com/coolfootwear/storefront/internal/storage"
)

// Ledger is the authoritative cart of one owner. Every dispatched action is written
// through to the store before it becomes visible.
type Ledger struct {
	store storage.Store
	key   string
	state State
}

// Load restores the owner's cart from the store. A missing or unreadable blob yields an empty cart.
func Load(ctx context.Context, store storage.Store, owner string) (*Ledger, error) {
	l := &Ledger{
		store: store,
		key:   storage.CartKey(owner),
		state: State{CartProducts: []entity.CartLineItem{}},
	}

	blob, err := store.Load(ctx, l.key)
	if errors.Is(err, storage.ErrNotFound) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var stored State
	if err := json.Unmarshal(blob, &stored); err != nil {
		slog.Warn("Discarding unreadable cart data", "key", l.key, "err", err)
		return l, nil
	}
	if stored.CartProducts != nil {
		l.state = stored
	}
	return l, nil
}

// State returns a copy of the current cart state.
func (l *Ledger) State() State {
	return State{CartProducts: slices.Clone(l.state.CartProducts)}
}

// Items returns a copy of the line items in insertion order.
func (l *Ledger) Items() []entity.CartLineItem {
	return l.State().CartProducts
}

// Dispatch reduces action against the current state and persists the result.
// On a storage failure the ledger keeps its previous state.
func (l *Ledger) Dispatch(ctx context.Context, action Action) error {
	next, err := Reduce(l.state, action)
	if err != nil {
		return err
	}

	blob, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	if err := l.store.Save(ctx, l.key, blob); err != nil {
		return fmt.Errorf("failed to persist cart after %s: %w", action.ActionType(), err)
	}

	l.state = next
	return nil
}

func (l *Ledger) AddProduct(ctx context.Context, item entity.CartLineItem) error {
	return l.Dispatch(ctx, AddProduct{Item: item})
}

func (l *Ledger) Increment(ctx context.Context, id string) error {
	return l.Dispatch(ctx, Increment{ID: id})
}

func (l *Ledger) Decrement(ctx context.Context, id string) error {
	return l.Dispatch(ctx, Decrement{ID: id})
}

func (l *Ledger) RemoveProduct(ctx context.Context, id string) error {
	return l.Dispatch(ctx, RemoveProduct{ID: id})
}

// Clear empties the cart and rewrites the stored list so no stale items survive a logout.
func (l *Ledger) Clear(ctx context.Context) error {
	return l.Dispatch(ctx, ClearCartProducts{})
}
