package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nikolayk812/storefront/internal/identity"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON")
		return
	}

	token, err := s.login.Authenticate(req.Username, req.Password)
	if errors.Is(err, identity.ErrBadCredentials) {
		writeError(w, http.StatusUnauthorized, "BAD_CREDENTIALS", "invalid username or password")
		return
	}
	if err != nil {
		s.internalError(w, "login", err)
		return
	}

	writeSuccess(w, http.StatusOK, loginResponse{Token: token})
}
