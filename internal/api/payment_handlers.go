package api

import (
	"io"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/example/shop-api/internal/payments"
)

// maxWebhookBody caps how much of a webhook request we are willing to read
const maxWebhookBody = 1 << 16

// PaymentHandlers serves the Stripe and PayPal payment routes
type PaymentHandlers struct {
	payments *payments.Service
}

func NewPaymentHandlers(paymentService *payments.Service) *PaymentHandlers {
	return &PaymentHandlers{payments: paymentService}
}

// CreatePaymentIntentRequest is the Stripe intent request body
type CreatePaymentIntentRequest struct {
	OrderID string          `json:"orderId" validate:"required"`
	Amount  decimal.Decimal `json:"amount" validate:"required"`
}

// CreateStripeIntent creates a Stripe payment intent for an order and
// returns the client secret
func (h *PaymentHandlers) CreateStripeIntent(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentIntentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	clientSecret, err := h.payments.CreateStripeIntent(r.Context(), req.OrderID, req.Amount)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"clientSecret": clientSecret})
}

// StripeWebhook receives payment events from Stripe. The signature is
// verified over the raw body, so nothing may consume it first.
func (h *PaymentHandlers) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		respondJSONError(w, "failed to read body", http.StatusBadRequest)
		return
	}

	if err := h.payments.HandleStripeWebhook(r.Context(), payload, r.Header.Get("stripe-signature")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"received": true})
}

// CreatePayPalOrderRequest is the PayPal order creation request body
type CreatePayPalOrderRequest struct {
	OrderID string          `json:"orderId" validate:"required"`
	Amount  decimal.Decimal `json:"amount" validate:"required"`
}

// CreatePayPalOrder creates a PayPal order and returns the provider response
func (h *PaymentHandlers) CreatePayPalOrder(w http.ResponseWriter, r *http.Request) {
	var req CreatePayPalOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.payments.CreatePayPalOrder(r.Context(), req.OrderID, req.Amount)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// CapturePayPalOrder captures a previously created PayPal order and returns
// the provider response
func (h *PaymentHandlers) CapturePayPalOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PayPalOrderID string `json:"paypalOrderId" validate:"required"`
	}
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.payments.CapturePayPalOrder(r.Context(), req.PayPalOrderID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}
