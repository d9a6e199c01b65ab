package payment_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/payment"
)

func TestCreateSession(t *testing.T) {
	apiKey := gofakeit.UUID()
	redirectURL := gofakeit.URL()

	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer "+apiKey, r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"url": redirectURL})
	}))
	defer srv.Close()

	client := payment.NewClient(srv.URL, apiKey, "https://shop.test/success", "https://shop.test/cancel")

	session, err := client.CreateSession(t.Context(), []domain.CheckoutLineItem{
		{Name: "Runner", Description: "Road shoe", UnitPriceCents: 12999, Quantity: 2, Currency: "usd"},
	})
	require.NoError(t, err)
	assert.Equal(t, redirectURL, session.URL)

	assert.Equal(t, "https://shop.test/success", captured["success_url"])
	assert.Equal(t, "https://shop.test/cancel", captured["cancel_url"])

	lineItems, ok := captured["line_items"].([]any)
	require.True(t, ok)
	require.Len(t, lineItems, 1)

	item, ok := lineItems[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Runner", item["name"])
	// prices ride as strings through the wire format
	assert.Equal(t, "12999", item["unit_price_cents"])
	assert.Equal(t, float64(2), item["quantity"])
	assert.Equal(t, "usd", item["currency"])
}

func TestCreateSessionServerRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := payment.NewClient(srv.URL, gofakeit.UUID(), gofakeit.URL(), gofakeit.URL())

	_, err := client.CreateSession(t.Context(), []domain.CheckoutLineItem{{Name: "Runner", Quantity: 1}})
	require.ErrorContains(t, err, "status 401")
	require.ErrorContains(t, err, "invalid api key")
}

func TestCreateSessionMissingURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := payment.NewClient(srv.URL, gofakeit.UUID(), gofakeit.URL(), gofakeit.URL())

	_, err := client.CreateSession(t.Context(), []domain.CheckoutLineItem{{Name: "Runner", Quantity: 1}})
	require.ErrorContains(t, err, "response has no url")
}

func TestCreateSessionNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	srv.Close() // shut down before the call

	client := payment.NewClient(srv.URL, gofakeit.UUID(), gofakeit.URL(), gofakeit.URL())

	_, err := client.CreateSession(t.Context(), []domain.CheckoutLineItem{{Name: "Runner", Quantity: 1}})
	require.Error(t, err)
}
