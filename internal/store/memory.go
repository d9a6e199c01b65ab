package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

// MemoryStore keeps cart blobs in process memory. It backs tests and the
// degraded mode where no durable medium is configured; carts then live
// only as long as the process.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemory() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, ownerID string) ([]domain.CartItem, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}

	s.mu.RLock()
	payload, ok := s.blobs[ownerID]
	s.mu.RUnlock()

	if !ok {
		return nil, port.ErrCartNotFound
	}

	items, err := DecodeItems(payload)
	if err != nil {
		return nil, fmt.Errorf("DecodeItems: %w", err)
	}

	return items, nil
}

func (s *MemoryStore) Save(_ context.Context, ownerID string, items []domain.CartItem) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	payload, err := EncodeItems(items)
	if err != nil {
		return fmt.Errorf("EncodeItems: %w", err)
	}

	s.mu.Lock()
	s.blobs[ownerID] = payload
	s.mu.Unlock()

	return nil
}

func (s *MemoryStore) Delete(_ context.Context, ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	s.mu.Lock()
	delete(s.blobs, ownerID)
	s.mu.Unlock()

	return nil
}
