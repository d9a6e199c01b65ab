package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
)

type submitContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type contactMessageResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"received_at"`
}

func contactToResponse(msg domain.ContactMessage) contactMessageResponse {
	return contactMessageResponse{
		ID:         msg.ID.String(),
		Name:       msg.Name,
		Email:      msg.Email,
		Message:    msg.Message,
		ReceivedAt: msg.ReceivedAt,
	}
}

func (s *Server) submitContact(w http.ResponseWriter, r *http.Request) {
	var req submitContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusBadRequest, "INVALID_EMAIL", "a valid email address is required")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "INVALID_MESSAGE", "message is required")
		return
	}

	msg, err := s.contacts.InsertMessage(r.Context(), domain.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		s.internalError(w, "submit contact message", err)
		return
	}

	writeSuccess(w, http.StatusCreated, contactToResponse(msg))
}
