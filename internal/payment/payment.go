// Package payment builds the options handed to the hosted payment widget and
// carries its confirmation back to order creation.
package payment

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DefaultCurrency    = "INR"
	DefaultName        = "Cool Footwear"
	DefaultDescription = "Test Transaction"
	DefaultThemeColor  = "#88C8BC"
)

var (
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrMissingPaymentID = errors.New("payment id is required")
)

// Merchant is the storefront's account with the payment provider.
type Merchant struct {
	Key         string
	Name        string
	Description string
	ImageURL    string
	CallbackURL string
	Currency    string
	ThemeColor  string
}

// Contact is the payer as entered on the checkout form.
type Contact struct {
	FirstName string
	LastName  string
	Email     string
	Address   string
}

type Prefill struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Notes struct {
	Address string `json:"address"`
}

type Theme struct {
	Color string `json:"color"`
}

// Options is the widget configuration. Amount is in minor currency units.
type Options struct {
	Key         string  `json:"key"`
	Amount      int64   `json:"amount"`
	Currency    string  `json:"currency"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image,omitempty"`
	CallbackURL string  `json:"callback_url,omitempty"`
	Prefill     Prefill `json:"prefill"`
	Notes       Notes   `json:"notes"`
	Theme       Theme   `json:"theme"`
}

// NewOptions converts finalAmount to paise and fills merchant defaults.
func NewOptions(m Merchant, finalAmount decimal.Decimal, c Contact) (Options, error) {
	if !finalAmount.IsPositive() {
		return Options{}, ErrInvalidAmount
	}

	return Options{
		Key:         m.Key,
		Amount:      finalAmount.Mul(decimal.NewFromInt(100)).Round(0).IntPart(),
		Currency:    orDefault(m.Currency, DefaultCurrency),
		Name:        orDefault(m.Name, DefaultName),
		Description: orDefault(m.Description, DefaultDescription),
		Image:       m.ImageURL,
		CallbackURL: m.CallbackURL,
		Prefill: Prefill{
			Name:  strings.TrimSpace(c.FirstName + " " + c.LastName),
			Email: c.Email,
		},
		Notes: Notes{Address: c.Address},
		Theme: Theme{Color: orDefault(m.ThemeColor, DefaultThemeColor)},
	}, nil
}

// Confirmation is the provider's callback after a successful payment.
type Confirmation struct {
	PaymentID string `json:"paymentId"`
}

func (c Confirmation) Validate() error {
	if strings.TrimSpace(c.PaymentID) == "" {
		return ErrMissingPaymentID
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
