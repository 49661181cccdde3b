package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolfootwear/storefront/internal/payment"
	"github.com/coolfootwear/storefront/internal/validation"
)

func validCheckout() CheckoutForm {
	return CheckoutForm{
		Country:     "India",
		FirstName:   "Asha",
		LastName:    "Rao",
		Address:     "12 MG Road",
		Town:        "Bengaluru",
		State:       "Karnataka",
		PostalCode:  "560001",
		Email:       "asha@example.com",
		Phone:       "9876543210",
		AcceptTerms: true,
	}
}

func newCheckout(t *testing.T, f *fixture) *CheckoutService {
	t.Helper()
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	svc := NewCheckoutService(f.store, f.carts, f.orderSvc, payment.Merchant{Key: "rzp_test"}, kolkata)
	svc.now = func() time.Time { return time.Date(2024, 3, 5, 9, 30, 15, 0, time.UTC) }
	return svc
}

func TestCheckoutService_BeginValidates(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	checkout := newCheckout(t, f)

	form := validCheckout()
	form.PostalCode = "5600"
	_, err := checkout.Begin(ctx, "b1", form)
	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "Zip / Postal code must be at least 6 numbers.", errs["postalcode"])

	form = validCheckout()
	form.AcceptTerms = false
	_, err = checkout.Begin(ctx, "b1", form)
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "Please accept terms and conditions!", errs["acceptTerms"])

	_, err = checkout.Begin(ctx, "b1", validCheckout())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutService_BeginAndConfirm(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	checkout := newCheckout(t, f)

	_, err := f.carts.AddProduct(ctx, "b1", "p1")
	require.NoError(t, err)
	_, err = f.carts.Increment(ctx, "b1", "p1")
	require.NoError(t, err)

	pending, err := checkout.Begin(ctx, "b1", validCheckout())
	require.NoError(t, err)
	assert.Equal(t, int64(266800), pending.Payment.Amount)
	assert.Equal(t, "Asha Rao", pending.Payment.Prefill.Name)
	assert.Equal(t, "12 MG Road", pending.Payment.Notes.Address)

	order, err := checkout.Confirm(ctx, "b1", "u1", payment.Confirmation{PaymentID: "pay_1"})
	require.NoError(t, err)
	assert.Equal(t, "u1", order.UserID)
	assert.Equal(t, "pay_1", order.PaymentID)
	assert.True(t, decimal.NewFromInt(2668).Equal(order.FinalAmount))
	require.Len(t, order.Products, 1)
	assert.True(t, decimal.NewFromInt(2598).Equal(order.Products[0].Price))
	assert.Equal(t, "Rao", order.Customer.LastName)
	assert.Equal(t, "India", order.Customer.Country)
	assert.Equal(t, "5/3/2024, 3:00:15 pm", order.OrderedTime)

	orders, err := f.orderSvc.UserOrders(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	// The pending checkout is consumed.
	_, err = checkout.Confirm(ctx, "b1", "u1", payment.Confirmation{PaymentID: "pay_2"})
	assert.ErrorIs(t, err, ErrNoPendingPayment)
}

func TestCheckoutService_ConfirmRejectsChangedCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	checkout := newCheckout(t, f)

	_, err := f.carts.AddProduct(ctx, "b1", "p1")
	require.NoError(t, err)
	_, err = checkout.Begin(ctx, "b1", validCheckout())
	require.NoError(t, err)
	_, err = f.carts.AddProduct(ctx, "b1", "p2")
	require.NoError(t, err)

	_, err = checkout.Confirm(ctx, "b1", "u1", payment.Confirmation{PaymentID: "pay_1"})
	assert.ErrorIs(t, err, ErrCartChanged)

	_, err = checkout.Confirm(ctx, "b1", "u1", payment.Confirmation{})
	assert.ErrorIs(t, err, payment.ErrMissingPaymentID)
}
