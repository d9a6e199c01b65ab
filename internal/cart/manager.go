package cart

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/nikolayk812/storefront/internal/port"
)

// Manager hands out one Ledger per owner for the process lifetime.
// Carts are scoped to a single browser session; cross-tab or cross-device
// consistency is explicitly not promised.
type Manager struct {
	store  port.CartStore
	logger *zap.Logger

	mu      sync.Mutex
	ledgers map[string]*Ledger
}

func NewManager(store port.CartStore, logger *zap.Logger) *Manager {
	return &Manager{
		store:   store,
		logger:  logger,
		ledgers: make(map[string]*Ledger),
	}
}

// Ledger returns the owner's ledger, hydrating it from the store on
// first touch.
func (m *Manager) Ledger(ctx context.Context, ownerID string) *Ledger {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l, ok := m.ledgers[ownerID]; ok {
		return l
	}

	l := NewLedger(ctx, ownerID, m.store, m.logger)
	m.ledgers[ownerID] = l
	return l
}

// Flush waits for pending writes across all ledgers, used on shutdown.
func (m *Manager) Flush() {
	m.mu.Lock()
	ledgers := make([]*Ledger, 0, len(m.ledgers))
	for _, l := range m.ledgers {
		ledgers = append(ledgers, l)
	}
	m.mu.Unlock()

	for _, l := range ledgers {
		l.Flush()
	}
}
