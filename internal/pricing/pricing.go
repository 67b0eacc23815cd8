// Package pricing computes order totals from line items and configurable
// rules. All arithmetic uses decimals; float64 appears only at the API
// boundary where amounts are JSON numbers.
package pricing

import (
	"github.com/shopspring/decimal"

	"foodexpress/internal/model"
)

// Rules holds the tax and delivery parameters applied to a checkout.
type Rules struct {
	// TaxRate is the GST rate applied to the subtotal, e.g. 0.05 for 5%.
	TaxRate decimal.Decimal `json:"taxRate"`

	// DeliveryFee is a flat fee added whenever the subtotal is positive.
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
}

// DefaultRules returns the rules the observed storefront charges:
// 5% GST and a flat 40 delivery fee on any non-empty order.
func DefaultRules() Rules {
	return Rules{
		TaxRate:     decimal.NewFromFloat(0.05),
		DeliveryFee: decimal.NewFromInt(40),
	}
}

// Quote is the priced breakdown of a set of line items.
type Quote struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Delivery decimal.Decimal
	Total    decimal.Decimal
}

// Price computes the quote for the given items under the rules.
// The delivery fee applies only when the subtotal is positive, and the
// total is rounded to two decimal places.
func Price(rules Rules, items []model.OrderItemRequest) Quote {
	subtotal := decimal.Zero
	for _, item := range items {
		price := decimal.NewFromFloat(item.Price)
		qty := decimal.NewFromInt(int64(item.Quantity))
		subtotal = subtotal.Add(price.Mul(qty))
	}

	tax := subtotal.Mul(rules.TaxRate)

	delivery := decimal.Zero
	if subtotal.IsPositive() {
		delivery = rules.DeliveryFee
	}

	total := subtotal.Add(tax).Add(delivery).Round(2)

	return Quote{
		Subtotal: subtotal,
		Tax:      tax,
		Delivery: delivery,
		Total:    total,
	}
}

// TotalMatches reports whether a client-submitted total equals the quote
// total at two-decimal precision.
func (q Quote) TotalMatches(total float64) bool {
	return decimal.NewFromFloat(total).Round(2).Equal(q.Total)
}
