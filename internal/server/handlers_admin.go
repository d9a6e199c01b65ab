package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nikolayk812/storefront/internal/domain"
)

type insertProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	ImageURL    string `json:"image_url"`
}

func (s *Server) insertProduct(w http.ResponseWriter, r *http.Request) {
	var req insertProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "INVALID_NAME", "product name is required")
		return
	}
	if req.PriceCents < 0 {
		writeError(w, http.StatusBadRequest, "INVALID_PRICE", "price must not be negative")
		return
	}

	product, err := s.products.InsertProduct(r.Context(), domain.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		PriceCents:  req.PriceCents,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		s.internalError(w, "insert product", err)
		return
	}

	writeSuccess(w, http.StatusCreated, s.productToResponse(product))
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "product_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "product id is not valid")
		return
	}

	deleted, err := s.products.DeleteProduct(r.Context(), id)
	if err != nil {
		s.internalError(w, "delete product", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "product not found")
		return
	}

	writeMessage(w, http.StatusOK, "product deleted")
}

func (s *Server) listContactMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := s.contacts.ListMessages(r.Context())
	if err != nil {
		s.internalError(w, "list contact messages", err)
		return
	}

	responses := make([]contactMessageResponse, 0, len(messages))
	for _, msg := range messages {
		responses = append(responses, contactToResponse(msg))
	}

	writeSuccess(w, http.StatusOK, responses)
}
