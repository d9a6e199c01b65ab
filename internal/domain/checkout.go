package domain

// CheckoutLineItem is one row of a payment-session request, derived 1:1
// from a cart item at checkout time and never stored.
type CheckoutLineItem struct {
	Name           string
	Description    string
	UnitPriceCents int64
	Quantity       int64
	Currency       string
}

// CheckoutSession is what the payment collaborator hands back: a hosted
// page the browser must navigate to. Payment completion is observed later
// through the success/cancel return routes, not here.
type CheckoutSession struct {
	URL string
}

func LineItemsFromCart(items []CartItem, currencyCode string) []CheckoutLineItem {
	lineItems := make([]CheckoutLineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, CheckoutLineItem{
			Name:           item.Product.Name,
			Description:    item.Product.Description,
			UnitPriceCents: item.Product.PriceCents,
			Quantity:       item.Quantity,
			Currency:       currencyCode,
		})
	}
	return lineItems
}
