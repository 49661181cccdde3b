package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolfootwear/storefront/internal/entity"
)

func item(id, price string) entity.CartLineItem {
	return entity.CartLineItem{
		ID:       id,
		Title:    "Shoe " + id,
		ImageURL: "https://img.example/" + id + ".png",
		Price:    decimal.RequireFromString(price),
	}
}

func reduceAll(t *testing.T, actions ...Action) State {
	t.Helper()
	state := State{}
	for _, a := range actions {
		var err error
		state, err = Reduce(state, a)
		require.NoError(t, err)
	}
	return state
}

func TestReduce_AddProductAppendsWithQuantityOne(t *testing.T) {
	in := item("p1", "499")
	in.Quantity = 7

	state := reduceAll(t, AddProduct{Item: in})

	require.Len(t, state.CartProducts, 1)
	assert.Equal(t, "p1", state.CartProducts[0].ID)
	assert.Equal(t, 1, state.CartProducts[0].Quantity)
}

func TestReduce_AddExistingIncrementsQuantity(t *testing.T) {
	state := reduceAll(t,
		AddProduct{Item: item("p1", "499")},
		AddProduct{Item: item("p2", "999")},
		AddProduct{Item: item("p1", "499")},
	)

	require.Len(t, state.CartProducts, 2)
	assert.Equal(t, "p1", state.CartProducts[0].ID)
	assert.Equal(t, 2, state.CartProducts[0].Quantity)
	assert.Equal(t, "p2", state.CartProducts[1].ID)
}

func TestReduce_DecrementStopsAtOne(t *testing.T) {
	state := reduceAll(t,
		AddProduct{Item: item("p1", "100")},
		Decrement{ID: "p1"},
		Decrement{ID: "p1"},
	)

	require.Len(t, state.CartProducts, 1)
	assert.Equal(t, 1, state.CartProducts[0].Quantity)
}

func TestReduce_IncrementDecrement(t *testing.T) {
	state := reduceAll(t,
		AddProduct{Item: item("p1", "100")},
		Increment{ID: "p1"},
		Increment{ID: "p1"},
		Decrement{ID: "p1"},
	)

	assert.Equal(t, 2, state.CartProducts[0].Quantity)
}

func TestReduce_UnknownIDsAreNoOps(t *testing.T) {
	base := reduceAll(t, AddProduct{Item: item("p1", "100")})

	for _, a := range []Action{Increment{ID: "nope"}, Decrement{ID: "nope"}, RemoveProduct{ID: "nope"}} {
		next, err := Reduce(base, a)
		require.NoError(t, err)
		assert.Equal(t, base, next, a.ActionType())
	}
}

func TestReduce_RemoveAndClear(t *testing.T) {
	state := reduceAll(t,
		AddProduct{Item: item("p1", "100")},
		AddProduct{Item: item("p2", "200")},
		AddProduct{Item: item("p3", "300")},
		RemoveProduct{ID: "p2"},
	)
	require.Len(t, state.CartProducts, 2)
	assert.Equal(t, "p1", state.CartProducts[0].ID)
	assert.Equal(t, "p3", state.CartProducts[1].ID)

	state, err := Reduce(state, ClearCartProducts{})
	require.NoError(t, err)
	assert.Empty(t, state.CartProducts)
	assert.NotNil(t, state.CartProducts)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	base := reduceAll(t, AddProduct{Item: item("p1", "100")})

	_, err := Reduce(base, Increment{ID: "p1"})
	require.NoError(t, err)

	assert.Equal(t, 1, base.CartProducts[0].Quantity)
}

type bogusAction struct{}

func (bogusAction) ActionType() string { return "bogus" }

func TestReduce_UnknownAction(t *testing.T) {
	_, err := Reduce(State{}, bogusAction{})
	assert.Error(t, err)
}

func TestReduce_NoDuplicateIDsUnderMixedSequences(t *testing.T) {
	ids := []string{"a", "b", "c", "a", "b", "a"}
	var actions []Action
	for i, id := range ids {
		actions = append(actions, AddProduct{Item: item(id, "10")})
		switch i % 3 {
		case 0:
			actions = append(actions, Increment{ID: id})
		case 1:
			actions = append(actions, Decrement{ID: id})
		case 2:
			actions = append(actions, RemoveProduct{ID: ids[i-1]})
		}
	}

	state := State{}
	for _, a := range actions {
		var err error
		state, err = Reduce(state, a)
		require.NoError(t, err)

		seen := map[string]bool{}
		for _, li := range state.CartProducts {
			require.False(t, seen[li.ID], "duplicate id %s after %s", li.ID, a.ActionType())
			require.GreaterOrEqual(t, li.Quantity, 1)
			seen[li.ID] = true
		}
	}
}
