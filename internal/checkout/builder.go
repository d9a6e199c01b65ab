// Package checkout turns a cart into a hosted payment session and hands
// back the redirect target. It never polls for payment completion; the
// success/cancel return routes observe the outcome later.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

var (
	// ErrNotAuthenticated rejects checkout before any network call when
	// no identity is present.
	ErrNotAuthenticated = errors.New("login required to check out")
	// ErrEmptyCart rejects checkout of a cart with no entries.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrCheckoutInFlight rejects re-entry while a session creation for
	// the same owner is still pending.
	ErrCheckoutInFlight = errors.New("checkout already in progress")
)

type Builder struct {
	sessions     port.PaymentSessionCreator
	currencyCode string
	logger       *zap.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewBuilder(sessions port.PaymentSessionCreator, currencyCode string, logger *zap.Logger) *Builder {
	return &Builder{
		sessions:     sessions,
		currencyCode: currencyCode,
		logger:       logger,
		inFlight:     make(map[string]bool),
	}
}

// CreateSession validates the checkout preconditions, maps cart items
// 1:1 into line items and delegates to the payment collaborator. On any
// failure the cart is left untouched so the user can simply retry.
func (b *Builder) CreateSession(ctx context.Context, ownerID string, authenticated bool, items []domain.CartItem) (domain.CheckoutSession, error) {
	if !authenticated {
		return domain.CheckoutSession{}, ErrNotAuthenticated
	}
	if len(items) == 0 {
		return domain.CheckoutSession{}, ErrEmptyCart
	}

	if !b.begin(ownerID) {
		return domain.CheckoutSession{}, ErrCheckoutInFlight
	}
	defer b.end(ownerID)

	lineItems := domain.LineItemsFromCart(items, b.currencyCode)

	session, err := b.sessions.CreateSession(ctx, lineItems)
	if err != nil {
		b.logger.Warn("payment session creation failed",
			zap.String("owner_id", ownerID),
			zap.Error(err))
		return domain.CheckoutSession{}, fmt.Errorf("sessions.CreateSession: %w", err)
	}

	b.logger.Info("payment session created",
		zap.String("owner_id", ownerID),
		zap.Int("line_items", len(lineItems)))

	return session, nil
}

func (b *Builder) begin(ownerID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.inFlight[ownerID] {
		return false
	}
	b.inFlight[ownerID] = true
	return true
}

func (b *Builder) end(ownerID string) {
	b.mu.Lock()
	delete(b.inFlight, ownerID)
	b.mu.Unlock()
}
