// Package payment talks to the hosted-checkout provider over HTTP JSON.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
)

const defaultTimeout = 15 * time.Second

// Client creates hosted payment sessions. It is deliberately thin: one
// POST per checkout attempt, no retries, no payment-state tracking -- the
// provider redirects the shopper back to the configured return URLs.
type Client struct {
	baseURL    string
	apiKey     string
	successURL string
	cancelURL  string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, successURL, cancelURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		successURL: successURL,
		cancelURL:  cancelURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

type sessionLineItem struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	UnitPriceCents string `json:"unit_price_cents"`
	Quantity       int64  `json:"quantity"`
	Currency       string `json:"currency"`
}

type createSessionRequest struct {
	LineItems  []sessionLineItem `json:"line_items"`
	SuccessURL string            `json:"success_url"`
	CancelURL  string            `json:"cancel_url"`
}

type createSessionResponse struct {
	URL string `json:"url"`
}

func (c *Client) CreateSession(ctx context.Context, lineItems []domain.CheckoutLineItem) (domain.CheckoutSession, error) {
	items := make([]sessionLineItem, 0, len(lineItems))
	for _, item := range lineItems {
		items = append(items, sessionLineItem{
			Name:           item.Name,
			Description:    item.Description,
			UnitPriceCents: strconv.FormatInt(item.UnitPriceCents, 10),
			Quantity:       item.Quantity,
			Currency:       item.Currency,
		})
	}

	body, err := json.Marshal(createSessionRequest{
		LineItems:  items,
		SuccessURL: c.successURL,
		CancelURL:  c.cancelURL,
	})
	if err != nil {
		return domain.CheckoutSession{}, fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return domain.CheckoutSession{}, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.CheckoutSession{}, fmt.Errorf("httpClient.Do: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.CheckoutSession{}, fmt.Errorf("create session: status %d: %s", resp.StatusCode, snippet)
	}

	var parsed createSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domain.CheckoutSession{}, fmt.Errorf("decode response: %w", err)
	}
	if parsed.URL == "" {
		return domain.CheckoutSession{}, fmt.Errorf("create session: response has no url")
	}

	return domain.CheckoutSession{URL: parsed.URL}, nil
}
