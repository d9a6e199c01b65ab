package port

import (
	"context"
	"errors"

	"github.com/nikolayk812/storefront/internal/domain"
)

// ErrCartNotFound signals an absent cart, which is the normal first-run
// state and not a failure.
var ErrCartNotFound = errors.New("cart not found")

// CartStore is the durable medium behind a cart ledger. Implementations
// persist the full item snapshot per owner; ordering between successive
// saves only needs last-write-wins since every save carries everything.
type CartStore interface {
	// Load returns the persisted items for ownerID, or ErrCartNotFound.
	Load(ctx context.Context, ownerID string) ([]domain.CartItem, error)
	// Save overwrites the persisted snapshot for ownerID.
	Save(ctx context.Context, ownerID string, items []domain.CartItem) error
	// Delete removes the persisted snapshot, if any.
	Delete(ctx context.Context, ownerID string) error
}
