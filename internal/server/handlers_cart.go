package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nikolayk812/storefront/internal/domain"
)

type cartItemResponse struct {
	Product       productResponse `json:"product"`
	Quantity      int64           `json:"quantity"`
	SubtotalCents int64           `json:"subtotal_cents"`
	AddedAt       time.Time       `json:"added_at"`
}

type cartResponse struct {
	OwnerID       string             `json:"owner_id"`
	Items         []cartItemResponse `json:"items"`
	ItemCount     int64              `json:"item_count"`
	SubtotalCents int64              `json:"subtotal_cents"`
	ShippingCents int64              `json:"shipping_cents"`
	TotalCents    int64              `json:"total_cents"`
	Subtotal      string             `json:"subtotal"`
	Shipping      string             `json:"shipping"`
	Total         string             `json:"total"`
	Currency      string             `json:"currency"`
}

func (s *Server) cartToResponse(c domain.Cart) cartResponse {
	items := make([]cartItemResponse, 0, len(c.Items))
	var count int64
	for _, item := range c.Items {
		count += item.Quantity
		items = append(items, cartItemResponse{
			Product:       s.productToResponse(item.Product),
			Quantity:      item.Quantity,
			SubtotalCents: item.SubtotalCents(),
			AddedAt:       item.AddedAt,
		})
	}

	quote := s.policy.Quote(c.Items)

	return cartResponse{
		OwnerID:       c.OwnerID,
		Items:         items,
		ItemCount:     count,
		SubtotalCents: quote.SubtotalCents,
		ShippingCents: quote.ShippingCents,
		TotalCents:    quote.TotalCents,
		Subtotal:      quote.Subtotal().String(),
		Shipping:      quote.Shipping().String(),
		Total:         quote.Total().String(),
		Currency:      quote.Currency.String(),
	}
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	ledger := s.carts.Ledger(r.Context(), cartOwnerFromContext(r.Context()))
	writeSuccess(w, http.StatusOK, s.cartToResponse(ledger.Cart()))
}

type addCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

func (s *Server) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "product id is not valid")
		return
	}
	if req.Quantity < 1 {
		writeError(w, http.StatusBadRequest, "INVALID_QUANTITY", "quantity must be at least 1")
		return
	}

	product, err := s.products.GetProduct(r.Context(), productID)
	if errors.Is(err, domain.ErrProductNotFound) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "product not found")
		return
	}
	if err != nil {
		s.internalError(w, "add cart item", err)
		return
	}

	ledger := s.carts.Ledger(r.Context(), cartOwnerFromContext(r.Context()))
	ledger.AddItem(product, req.Quantity)

	writeSuccess(w, http.StatusOK, s.cartToResponse(ledger.Cart()))
}

type updateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

// updateCartItem sets an absolute quantity. Zero or below removes the
// entry, matching the storefront's quantity stepper reaching zero.
func (s *Server) updateCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "product_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "product id is not valid")
		return
	}

	var req updateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON")
		return
	}

	ledger := s.carts.Ledger(r.Context(), cartOwnerFromContext(r.Context()))
	ledger.UpdateQuantity(productID, req.Quantity)

	writeSuccess(w, http.StatusOK, s.cartToResponse(ledger.Cart()))
}

func (s *Server) removeCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "product_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "product id is not valid")
		return
	}

	ledger := s.carts.Ledger(r.Context(), cartOwnerFromContext(r.Context()))
	ledger.RemoveItem(productID)

	writeSuccess(w, http.StatusOK, s.cartToResponse(ledger.Cart()))
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	ledger := s.carts.Ledger(r.Context(), cartOwnerFromContext(r.Context()))
	ledger.Clear()

	writeSuccess(w, http.StatusOK, s.cartToResponse(ledger.Cart()))
}
