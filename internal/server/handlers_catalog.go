package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nikolayk812/storefront/internal/domain"
)

type productResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	Price       string    `json:"price"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s *Server) productToResponse(product domain.Product) productResponse {
	return productResponse{
		ID:          product.ID.String(),
		Name:        product.Name,
		Description: product.Description,
		PriceCents:  product.PriceCents,
		Price:       domain.MoneyFromCents(product.PriceCents, s.policy.Currency).String(),
		ImageURL:    product.ImageURL,
		CreatedAt:   product.CreatedAt,
	}
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.products.ListProducts(r.Context())
	if err != nil {
		s.internalError(w, "list products", err)
		return
	}

	responses := make([]productResponse, 0, len(products))
	for _, product := range products {
		responses = append(responses, s.productToResponse(product))
	}

	writeSuccess(w, http.StatusOK, responses)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "product_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "product id is not valid")
		return
	}

	product, err := s.products.GetProduct(r.Context(), id)
	if errors.Is(err, domain.ErrProductNotFound) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "product not found")
		return
	}
	if err != nil {
		s.internalError(w, "get product", err)
		return
	}

	writeSuccess(w, http.StatusOK, s.productToResponse(product))
}
