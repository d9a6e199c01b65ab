package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog record. Prices are kept in minor currency units
// (cents) end to end; conversion to major units happens only at display
// boundaries via Money.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	PriceCents  int64
	ImageURL    string

	CreatedAt time.Time
}
