package pricing

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrCouponExceedsTotal rejects a coupon larger than the subtotal.
	ErrCouponExceedsTotal = errors.New("coupon exceeds total")
	// ErrInvalidCoupon rejects a non-numeric, zero or negative coupon.
	ErrInvalidCoupon = errors.New("invalid coupon")
)

// CouponState is the coupon entry of a checkout: the pending input, the accepted
// discount and the message of the last rejected attempt.
type CouponState struct {
	Input    string          `json:"input"`
	Discount decimal.Decimal `json:"discount"`
	Error    string          `json:"error,omitempty"`
}

// EditCoupon records new pending input and clears any previous error.
func EditCoupon(state CouponState, input string) CouponState {
	state.Input = input
	state.Error = ""
	return state
}

// ApplyCoupon validates raw against subtotal. A valid coupon replaces the discount;
// a rejected one leaves the discount untouched and records the error. The input is
// cleared either way.
func ApplyCoupon(state CouponState, subtotal decimal.Decimal, raw string) (CouponState, error) {
	state.Input = ""

	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	switch {
	case err != nil || !value.IsPositive():
		state.Error = ErrInvalidCoupon.Error()
		return state, ErrInvalidCoupon
	case value.GreaterThan(subtotal):
		state.Error = ErrCouponExceedsTotal.Error()
		return state, ErrCouponExceedsTotal
	}

	state.Discount = value
	state.Error = ""
	return state, nil
}
