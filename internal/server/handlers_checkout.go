package server

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/nikolayk812/storefront/internal/checkout"
)

type checkoutResponse struct {
	URL string `json:"url"`
}

func (s *Server) createCheckout(w http.ResponseWriter, r *http.Request) {
	ownerID := cartOwnerFromContext(r.Context())
	_, authenticated := claimsFromContext(r.Context())

	ledger := s.carts.Ledger(r.Context(), ownerID)

	session, err := s.builder.CreateSession(r.Context(), ownerID, authenticated, ledger.Cart().Items)
	switch {
	case errors.Is(err, checkout.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, "LOGIN_REQUIRED", "please sign in to check out")
		return
	case errors.Is(err, checkout.ErrEmptyCart):
		writeError(w, http.StatusBadRequest, "EMPTY_CART", "cart is empty")
		return
	case errors.Is(err, checkout.ErrCheckoutInFlight):
		writeError(w, http.StatusConflict, "CHECKOUT_IN_FLIGHT", "checkout already in progress")
		return
	case err != nil:
		s.logger.Error("checkout failed",
			zap.String("owner_id", ownerID),
			zap.Error(err))
		writeError(w, http.StatusBadGateway, "PAYMENT_UNAVAILABLE", "payment provider is unavailable, please try again")
		return
	}

	writeSuccess(w, http.StatusCreated, checkoutResponse{URL: session.URL})
}

// checkoutSuccess is the return target after a completed payment. The
// cart is emptied here; fulfilment is the payment provider's problem.
func (s *Server) checkoutSuccess(w http.ResponseWriter, r *http.Request) {
	ownerID := cartOwnerFromContext(r.Context())

	ledger := s.carts.Ledger(r.Context(), ownerID)
	ledger.Clear()

	s.logger.Info("checkout completed", zap.String("owner_id", ownerID))

	writeMessage(w, http.StatusOK, "payment completed, thank you for your order")
}

// checkoutCancel is the return target after an abandoned payment. The
// cart is kept as-is so the user can retry.
func (s *Server) checkoutCancel(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "payment cancelled, your cart is unchanged")
}
