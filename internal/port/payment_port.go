package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

// PaymentSessionCreator is the hosted-checkout collaborator. It is an
// opaque remote call: no retry policy lives behind this interface, a
// failed attempt is retried by the user re-invoking checkout.
type PaymentSessionCreator interface {
	CreateSession(ctx context.Context, lineItems []domain.CheckoutLineItem) (domain.CheckoutSession, error)
}
