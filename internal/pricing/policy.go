// Package pricing computes order totals from cart items. It is pure: a
// quote is recomputed on every read and never mutates the cart.
package pricing

import (
	"golang.org/x/text/currency"

	"github.com/nikolayk812/storefront/internal/domain"
)

// Default rates, in minor units: orders of 100.00 or more ship free,
// everything below pays a flat 10.00.
const (
	DefaultFreeShippingThresholdCents int64 = 100_00
	DefaultFlatShippingFeeCents       int64 = 10_00
)

type Policy struct {
	FreeShippingThresholdCents int64
	FlatShippingFeeCents       int64
	Currency                   currency.Unit
}

func DefaultPolicy() Policy {
	return Policy{
		FreeShippingThresholdCents: DefaultFreeShippingThresholdCents,
		FlatShippingFeeCents:       DefaultFlatShippingFeeCents,
		Currency:                   currency.USD,
	}
}

// Snapshot is a derived view of a cart's totals at one point in time.
type Snapshot struct {
	SubtotalCents int64
	ShippingCents int64
	TotalCents    int64
	Currency      currency.Unit
}

// Quote computes subtotal, shipping and total for the given items.
// The free-shipping threshold is inclusive. An empty cart quotes as all
// zeros, there is nothing to ship.
func (p Policy) Quote(items []domain.CartItem) Snapshot {
	if len(items) == 0 {
		return Snapshot{Currency: p.Currency}
	}

	var subtotal int64
	for _, item := range items {
		subtotal += item.SubtotalCents()
	}

	var shipping int64
	if subtotal < p.FreeShippingThresholdCents {
		shipping = p.FlatShippingFeeCents
	}

	return Snapshot{
		SubtotalCents: subtotal,
		ShippingCents: shipping,
		TotalCents:    subtotal + shipping,
		Currency:      p.Currency,
	}
}

func (s Snapshot) Subtotal() domain.Money {
	return domain.MoneyFromCents(s.SubtotalCents, s.Currency)
}

func (s Snapshot) Shipping() domain.Money {
	return domain.MoneyFromCents(s.ShippingCents, s.Currency)
}

func (s Snapshot) Total() domain.Money {
	return domain.MoneyFromCents(s.TotalCents, s.Currency)
}
