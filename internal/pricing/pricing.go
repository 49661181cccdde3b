// Package pricing derives the checkout figures of a cart: subtotal, delivery fee,
// coupon discount and total.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/coolfootwear/storefront/internal/entity"
)

// Snapshot is the derived pricing of a cart. It is never stored.
type Snapshot struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Delivery decimal.Decimal `json:"delivery"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// Subtotal sums price × quantity over all line items.
func Subtotal(items []entity.CartLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// DeliveryFee is keyed by the number of decimal digits in the integer part of the subtotal:
// 3 digits cost 40, 4 digits 70, 5 digits 100, more than 5 digits 150, anything shorter is free.
func DeliveryFee(subtotal decimal.Decimal) decimal.Decimal {
	switch n := digitCount(subtotal); {
	case n == 3:
		return decimal.NewFromInt(40)
	case n == 4:
		return decimal.NewFromInt(70)
	case n == 5:
		return decimal.NewFromInt(100)
	case n > 5:
		return decimal.NewFromInt(150)
	default:
		return decimal.Zero
	}
}

func digitCount(d decimal.Decimal) int {
	return len(d.Truncate(0).Abs().String())
}

// Quote prices items with a previously accepted discount. A discount that no longer
// satisfies 0 < discount <= subtotal is dropped.
func Quote(items []entity.CartLineItem, discount decimal.Decimal) Snapshot {
	subtotal := Subtotal(items)
	if !validDiscount(discount, subtotal) {
		discount = decimal.Zero
	}
	delivery := DeliveryFee(subtotal)

	return Snapshot{
		Subtotal: subtotal,
		Delivery: delivery,
		Discount: discount,
		Total:    subtotal.Add(delivery).Sub(discount),
	}
}

func validDiscount(discount, subtotal decimal.Decimal) bool {
	return discount.IsPositive() && discount.LessThanOrEqual(subtotal)
}
