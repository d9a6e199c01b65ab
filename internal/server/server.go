// Package server exposes the storefront over HTTP.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nikolayk812/storefront/internal/cart"
	"github.com/nikolayk812/storefront/internal/checkout"
	"github.com/nikolayk812/storefront/internal/identity"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/pricing"
)

type Server struct {
	products port.ProductRepository
	contacts port.ContactRepository
	carts    *cart.Manager
	builder  *checkout.Builder
	policy   pricing.Policy
	verifier port.TokenVerifier
	login    *identity.Login
	logger   *zap.Logger
}

func New(
	products port.ProductRepository,
	contacts port.ContactRepository,
	carts *cart.Manager,
	builder *checkout.Builder,
	policy pricing.Policy,
	verifier port.TokenVerifier,
	login *identity.Login,
	logger *zap.Logger,
) *Server {
	return &Server{
		products: products,
		contacts: contacts,
		carts:    carts,
		builder:  builder,
		policy:   policy,
		verifier: verifier,
		login:    login,
		logger:   logger,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(s.loggingMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { writeMessage(w, http.StatusOK, "ok") })
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) { writeMessage(w, http.StatusOK, "ready") })

	r.Route("/v1", func(r chi.Router) {
		r.Get("/products", s.listProducts)
		r.Get("/products/{product_id}", s.getProduct)

		r.Post("/contact", s.submitContact)
		r.Post("/auth/login", s.loginHandler)

		r.Group(func(r chi.Router) {
			r.Use(cartOwnerMiddleware)
			r.Use(s.identityMiddleware)

			r.Get("/cart", s.getCart)
			r.Post("/cart/items", s.addCartItem)
			r.Patch("/cart/items/{product_id}", s.updateCartItem)
			r.Delete("/cart/items/{product_id}", s.removeCartItem)
			r.Delete("/cart", s.clearCart)

			r.Post("/checkout", s.createCheckout)
			r.Get("/checkout/success", s.checkoutSuccess)
			r.Get("/checkout/cancel", s.checkoutCancel)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.identityMiddleware)
			r.Use(adminOnlyMiddleware)

			r.Post("/admin/products", s.insertProduct)
			r.Delete("/admin/products/{product_id}", s.deleteProduct)
			r.Get("/admin/contact-messages", s.listContactMessages)
		})
	})

	return r
}
