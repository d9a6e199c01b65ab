// Package cart holds the authoritative in-memory cart state for one
// owner and writes it through to a durable store.
package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

const persistTimeout = 5 * time.Second

// Ledger is the single writer of its CartStore entry. Mutations update
// in-memory state synchronously and persist the full snapshot in the
// background; a failed write never surfaces to the mutating caller, the
// cart must stay usable without the store.
type Ledger struct {
	ownerID string
	store   port.CartStore
	logger  *zap.Logger

	mu    sync.Mutex
	items []domain.CartItem

	pending sync.WaitGroup
}

// NewLedger hydrates the ledger from the store. A missing cart is the
// normal first run; a corrupt or unreadable one fails open to empty so a
// bad blob never blocks the storefront.
func NewLedger(ctx context.Context, ownerID string, store port.CartStore, logger *zap.Logger) *Ledger {
	l := &Ledger{
		ownerID: ownerID,
		store:   store,
		logger:  logger,
	}

	items, err := store.Load(ctx, ownerID)
	switch {
	case err == nil:
		l.items = items
	case errors.Is(err, port.ErrCartNotFound):
		// first run
	default:
		logger.Warn("cart hydration failed, starting empty",
			zap.String("owner_id", ownerID),
			zap.Error(err))
	}

	return l
}

// AddItem merges quantity into an existing entry for the same product,
// or appends a new entry preserving insertion order. A quantity below 1
// violates the caller contract and is ignored.
func (l *Ledger) AddItem(product domain.Product, quantity int64) {
	if quantity < 1 {
		l.logger.Warn("ignoring add with non-positive quantity",
			zap.String("owner_id", l.ownerID),
			zap.String("product_id", product.ID.String()),
			zap.Int64("quantity", quantity))
		return
	}

	l.mu.Lock()
	found := false
	for i := range l.items {
		if l.items[i].Product.ID == product.ID {
			l.items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		l.items = append(l.items, domain.CartItem{
			Product:  product,
			Quantity: quantity,
			AddedAt:  time.Now().UTC(),
		})
	}
	l.mu.Unlock()

	l.persist()
}

// RemoveItem drops the entry for productID; an absent id is a no-op.
func (l *Ledger) RemoveItem(productID uuid.UUID) {
	l.mu.Lock()
	changed := false
	for i := range l.items {
		if l.items[i].Product.ID == productID {
			l.items = append(l.items[:i], l.items[i+1:]...)
			changed = true
			break
		}
	}
	l.mu.Unlock()

	if changed {
		l.persist()
	}
}

// UpdateQuantity sets the entry's quantity to the exact value, unlike
// AddItem which is additive. A quantity of 0 or below removes the entry;
// an absent id is a no-op.
func (l *Ledger) UpdateQuantity(productID uuid.UUID, quantity int64) {
	if quantity < 1 {
		l.RemoveItem(productID)
		return
	}

	l.mu.Lock()
	changed := false
	for i := range l.items {
		if l.items[i].Product.ID == productID {
			l.items[i].Quantity = quantity
			changed = true
			break
		}
	}
	l.mu.Unlock()

	if changed {
		l.persist()
	}
}

// Clear empties the ledger and persists the empty state. Called by the
// payment success route and available as an explicit user action.
func (l *Ledger) Clear() {
	l.mu.Lock()
	l.items = nil
	l.mu.Unlock()

	l.persist()
}

// Cart returns a point-in-time copy of the ledger.
func (l *Ledger) Cart() domain.Cart {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := make([]domain.CartItem, len(l.items))
	copy(items, l.items)

	return domain.Cart{
		OwnerID: l.ownerID,
		Items:   items,
	}
}

// TotalItemCount sums quantities over all entries.
func (l *Ledger) TotalItemCount() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	var count int64
	for _, item := range l.items {
		count += item.Quantity
	}
	return count
}

// TotalPriceCents sums price times quantity over all entries, in minor
// units.
func (l *Ledger) TotalPriceCents() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	var total int64
	for _, item := range l.items {
		total += item.SubtotalCents()
	}
	return total
}

// persist snapshots current state and writes it through in the
// background. Mutators never wait on the store; each write carries the
// full snapshot so last-write-wins is enough.
func (l *Ledger) persist() {
	snapshot := l.Cart().Items

	l.pending.Add(1)
	go func() {
		defer l.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		if err := l.store.Save(ctx, l.ownerID, snapshot); err != nil {
			l.logger.Warn("cart persistence failed",
				zap.String("owner_id", l.ownerID),
				zap.Error(err))
		}
	}()
}

// Flush blocks until background writes issued so far have finished.
func (l *Ledger) Flush() {
	l.pending.Wait()
}
