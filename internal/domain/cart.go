package domain

import (
	"time"

	"github.com/google/uuid"
)

type Cart struct {
	OwnerID string
	Items   []CartItem
}

// CartItem holds a snapshot of the product captured at add-time.
// The snapshot is deliberately not refreshed from the catalog, so a later
// price or description change does not rewrite an existing cart.
type CartItem struct {
	Product  Product
	Quantity int64

	AddedAt time.Time
}

// SubtotalCents is the item's price contribution in minor units.
func (i CartItem) SubtotalCents() int64 {
	return i.Product.PriceCents * i.Quantity
}

func (c Cart) FindItem(productID uuid.UUID) (CartItem, bool) {
	for _, item := range c.Items {
		if item.Product.ID == productID {
			return item, true
		}
	}
	return CartItem{}, false
}
