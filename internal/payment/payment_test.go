package payment

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOptions(t *testing.T) {
	opts, err := NewOptions(
		Merchant{Key: "rzp_test_key", CallbackURL: "https://shop.example/callback"},
		decimal.RequireFromString("1369.50"),
		Contact{FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", Address: "12 MG Road"},
	)
	require.NoError(t, err)

	assert.Equal(t, int64(136950), opts.Amount)
	assert.Equal(t, "INR", opts.Currency)
	assert.Equal(t, "Cool Footwear", opts.Name)
	assert.Equal(t, "Test Transaction", opts.Description)
	assert.Equal(t, "Asha Rao", opts.Prefill.Name)
	assert.Equal(t, "asha@example.com", opts.Prefill.Email)
	assert.Equal(t, "12 MG Road", opts.Notes.Address)
	assert.Equal(t, "#88C8BC", opts.Theme.Color)

	blob, err := json.Marshal(opts)
	require.NoError(t, err)
	assert.Contains(t, string(blob), `"callback_url":"https://shop.example/callback"`)
}

func TestNewOptions_RejectsNonPositiveAmount(t *testing.T) {
	_, err := NewOptions(Merchant{}, decimal.Zero, Contact{})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestConfirmation_Validate(t *testing.T) {
	assert.ErrorIs(t, Confirmation{PaymentID: "  "}.Validate(), ErrMissingPaymentID)
	assert.NoError(t, Confirmation{PaymentID: "pay_123"}.Validate())
}
