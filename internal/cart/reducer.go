// Package cart implements the cart ledger: a pure reducer over the line-item list and a
// Ledger that persists the list after every mutation.
package cart

import (
	"fmt"
	"slices"

	"github.com/coolfootwear/storefront/internal/entity"
)

// State is the cart's ordered line-item list. Ids are unique.
type State struct {
	CartProducts []entity.CartLineItem `json:"cartProducts"`
}

// Action is a cart mutation understood by Reduce.
type Action interface {
	ActionType() string
}

// AddProduct adds one unit of an item, appending it when the id is new.
type AddProduct struct {
	Item entity.CartLineItem
}

func (AddProduct) ActionType() string { return "addProduct" }

// Increment raises the quantity of an existing line item by one.
type Increment struct {
	ID string
}

func (Increment) ActionType() string { return "increment" }

// Decrement lowers the quantity of an existing line item by one, never below 1.
type Decrement struct {
	ID string
}

func (Decrement) ActionType() string { return "decrement" }

// RemoveProduct drops a line item.
type RemoveProduct struct {
	ID string
}

func (RemoveProduct) ActionType() string { return "removeProduct" }

// ClearCartProducts empties the cart.
type ClearCartProducts struct{}

func (ClearCartProducts) ActionType() string { return "clearCartProducts" }

// Reduce returns the state that results from applying action to state.
// The input state is never modified.
func Reduce(state State, action Action) (State, error) {
	items := slices.Clone(state.CartProducts)

	switch a := action.(type) {
	case AddProduct:
		if i := indexOf(items, a.Item.ID); i >= 0 {
			items[i].Quantity++
		} else {
			item := a.Item
			item.Quantity = 1
			items = append(items, item)
		}
	case Increment:
		if i := indexOf(items, a.ID); i >= 0 {
			items[i].Quantity++
		}
	case Decrement:
		if i := indexOf(items, a.ID); i >= 0 && items[i].Quantity > 1 {
			items[i].Quantity--
		}
	case RemoveProduct:
		if i := indexOf(items, a.ID); i >= 0 {
			items = slices.Delete(items, i, i+1)
		}
	case ClearCartProducts:
		items = nil
	default:
		return state, fmt.Errorf("unknown cart action: %T", action)
	}

	if items == nil {
		items = []entity.CartLineItem{}
	}
	return State{CartProducts: items}, nil
}

func indexOf(items []entity.CartLineItem, id string) int {
	return slices.IndexFunc(items, func(item entity.CartLineItem) bool {
		return item.ID == id
	})
}
