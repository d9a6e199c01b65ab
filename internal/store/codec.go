package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

// cartItemRecord is the persisted shape of one cart entry. Price rides as
// a string so 64-bit minor-unit amounts survive any JSON reader that
// parses numbers as floats.
type cartItemRecord struct {
	ProductID          string    `json:"product_id"`
	ProductName        string    `json:"product_name"`
	ProductDescription string    `json:"product_description"`
	UnitPriceCents     string    `json:"unit_price_cents"`
	ImageURL           string    `json:"image_url"`
	Quantity           int64     `json:"quantity"`
	AddedAt            time.Time `json:"added_at"`
}

// EncodeItems serializes a full cart snapshot. An empty snapshot encodes
// as an empty JSON array, not null.
func EncodeItems(items []domain.CartItem) ([]byte, error) {
	records := make([]cartItemRecord, 0, len(items))
	for _, item := range items {
		records = append(records, cartItemRecord{
			ProductID:          item.Product.ID.String(),
			ProductName:        item.Product.Name,
			ProductDescription: item.Product.Description,
			UnitPriceCents:     strconv.FormatInt(item.Product.PriceCents, 10),
			ImageURL:           item.Product.ImageURL,
			Quantity:           item.Quantity,
			AddedAt:            item.AddedAt,
		})
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return payload, nil
}

// DecodeItems parses a persisted snapshot back into cart items. Any
// malformed record makes the whole payload invalid; callers fail open to
// an empty cart.
func DecodeItems(payload []byte) ([]domain.CartItem, error) {
	var records []cartItemRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	items := make([]domain.CartItem, 0, len(records))
	for i, record := range records {
		item, err := mapRecordToItem(record)
		if err != nil {
			return nil, fmt.Errorf("record[%d]: %w", i, err)
		}
		items = append(items, item)
	}

	return items, nil
}

func mapRecordToItem(record cartItemRecord) (domain.CartItem, error) {
	productID, err := uuid.Parse(record.ProductID)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("product_id[%s] is not valid: %w", record.ProductID, err)
	}

	priceCents, err := strconv.ParseInt(record.UnitPriceCents, 10, 64)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("unit_price_cents[%s] is not valid: %w", record.UnitPriceCents, err)
	}

	if record.Quantity < 1 {
		return domain.CartItem{}, fmt.Errorf("quantity[%d] is below 1", record.Quantity)
	}

	return domain.CartItem{
		Product: domain.Product{
			ID:          productID,
			Name:        record.ProductName,
			Description: record.ProductDescription,
			PriceCents:  priceCents,
			ImageURL:    record.ImageURL,
		},
		Quantity: record.Quantity,
		AddedAt:  record.AddedAt,
	}, nil
}
