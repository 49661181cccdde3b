package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/coolfootwear/storefront/internal/entity"
	"github.com/coolfootwear/storefront/internal/payment"
	"github.com/coolfootwear/storefront/internal/pricing"
	"github.com/coolfootwear/storefront/internal/storage"
	"github.com/coolfootwear/storefront/internal/validation"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrNoPendingPayment = errors.New("no checkout awaiting payment")
	ErrCartChanged      = errors.New("cart changed since checkout started")
)

// orderedTimeLayout renders the order time the way the storefront shows it, e.g. "6/10/2026, 3:04:05 pm".
const orderedTimeLayout = "2/1/2006, 3:04:05 pm"

// CheckoutForm is the shipping and contact form submitted before payment.
type CheckoutForm struct {
	Country     string `json:"countrySelect"`
	FirstName   string `json:"firstname"`
	LastName    string `json:"lastname"`
	Address     string `json:"address"`
	Town        string `json:"town"`
	State       string `json:"state"`
	PostalCode  string `json:"postalcode"`
	Email       string `json:"email"`
	Phone       string `json:"phoneno"`
	AcceptTerms bool   `json:"acceptTerms"`
}

func (f CheckoutForm) values() map[string]string {
	return map[string]string{
		"countrySelect": f.Country,
		"firstname":     f.FirstName,
		"lastname":      f.LastName,
		"address":       f.Address,
		"town":          f.Town,
		"state":         f.State,
		"postalcode":    f.PostalCode,
		"email":         f.Email,
		"phoneno":       f.Phone,
	}
}

// Customer maps the form onto the details stored with the order.
func (f CheckoutForm) Customer() entity.Customer {
	trim := strings.TrimSpace
	return entity.Customer{
		Name:       trim(f.FirstName),
		LastName:   trim(f.LastName),
		Email:      trim(f.Email),
		PhoneNo:    trim(f.Phone),
		Address:    trim(f.Address),
		Town:       trim(f.Town),
		State:      trim(f.State),
		PostalCode: trim(f.PostalCode),
		Country:    trim(f.Country),
	}
}

// PendingCheckout is a validated checkout awaiting the payment callback.
type PendingCheckout struct {
	Customer entity.Customer  `json:"customer"`
	Pricing  pricing.Snapshot `json:"pricing"`
	Payment  payment.Options  `json:"payment"`
}

// CheckoutService turns a cart and a checkout form into a paid order.
type CheckoutService struct {
	store    storage.Store
	carts    *CartService
	orders   *OrderService
	merchant payment.Merchant
	location *time.Location
	now      func() time.Time
}

func NewCheckoutService(store storage.Store, carts *CartService, orders *OrderService, merchant payment.Merchant, location *time.Location) *CheckoutService {
	if location == nil {
		location = time.UTC
	}
	return &CheckoutService{
		store:    store,
		carts:    carts,
		orders:   orders,
		merchant: merchant,
		location: location,
		now:      time.Now,
	}
}

// Begin validates the form, prices the cart and returns the payment widget options.
func (s *CheckoutService) Begin(ctx context.Context, owner string, form CheckoutForm) (*PendingCheckout, error) {
	if errs := validation.Checkout.Validate(form.values()); errs != nil {
		return nil, errs
	}
	if !form.AcceptTerms {
		return nil, validation.Errors{"acceptTerms": "Please accept terms and conditions!"}
	}

	items, quote, err := s.carts.Quote(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	customer := form.Customer()
	options, err := payment.NewOptions(s.merchant, quote.Total, payment.Contact{
		FirstName: customer.Name,
		LastName:  customer.LastName,
		Email:     customer.Email,
		Address:   customer.Address,
	})
	if err != nil {
		return nil, err
	}

	pending := &PendingCheckout{Customer: customer, Pricing: quote, Payment: options}
	blob, err := json.Marshal(pending)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal checkout: %w", err)
	}
	if err := s.store.Save(ctx, storage.CheckoutKey(owner), blob); err != nil {
		return nil, fmt.Errorf("failed to persist checkout: %w", err)
	}

	slog.Info("Service: Checkout started", "owner", owner, "total", quote.Total.String())
	return pending, nil
}

// Confirm records the order once the payment provider reports success. The cart
// must still price to the amount that was charged.
func (s *CheckoutService) Confirm(ctx context.Context, owner, userID string, confirmation payment.Confirmation) (*entity.Order, error) {
	if err := confirmation.Validate(); err != nil {
		return nil, err
	}

	pending, err := s.loadPending(ctx, owner)
	if err != nil {
		return nil, err
	}

	items, quote, err := s.carts.Quote(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if !quote.Total.Equal(pending.Pricing.Total) {
		return nil, ErrCartChanged
	}

	order := s.buildOrder(userID, items, pending.Pricing.Total, pending.Customer, confirmation.PaymentID)
	if err := s.orders.PlaceOrder(ctx, &entity.PlaceOrder{Order: order}); err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, storage.CheckoutKey(owner)); err != nil {
		slog.Warn("Failed to drop finished checkout", "owner", owner, "err", err)
	}
	return &order, nil
}

func (s *CheckoutService) buildOrder(userID string, items []entity.CartLineItem, finalAmount decimal.Decimal, customer entity.Customer, paymentID string) entity.Order {
	now := s.now()
	products := make([]entity.OrderProduct, 0, len(items))
	for _, item := range items {
		products = append(products, entity.OrderProduct{
			ID:       item.ID,
			Image:    item.ImageURL,
			Title:    item.Title,
			Quantity: item.Quantity,
			Price:    item.LineTotal(),
		})
	}

	return entity.Order{
		ID:          uuid.NewString(),
		UserID:      userID,
		Products:    products,
		PaymentID:   paymentID,
		FinalAmount: finalAmount,
		Customer:    customer,
		Status:      entity.OrderStatusPlaced,
		OrderedAt:   now,
		OrderedTime: now.In(s.location).Format(orderedTimeLayout),
	}
}

func (s *CheckoutService) loadPending(ctx context.Context, owner string) (*PendingCheckout, error) {
	blob, err := s.store.Load(ctx, storage.CheckoutKey(owner))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoPendingPayment
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout: %w", err)
	}

	var pending PendingCheckout
	if err := json.Unmarshal(blob, &pending); err != nil {
		slog.Warn("Discarding unreadable checkout data", "owner", owner, "err", err)
		return nil, ErrNoPendingPayment
	}
	return &pending, nil
}
