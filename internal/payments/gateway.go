// Package payments wraps the two payment providers behind a uniform
// create-intent / confirm lifecycle and reconciles provider notifications
// back onto orders.
package payments

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrProvider         = errors.New("payment provider error")
)

// Intent is an opened card payment intent
type Intent struct {
	ID           string
	ClientSecret string
}

// WebhookEvent is a verified provider notification
type WebhookEvent struct {
	Type     string
	IntentID string
}

// CardGateway is the card provider (intent API) integration
type CardGateway interface {
	CreateIntent(ctx context.Context, amount decimal.Decimal, orderID string) (*Intent, error)
	// ParseWebhook verifies the provider signature over the raw payload and
	// returns the decoded event. It must fail before any state is touched.
	ParseWebhook(payload []byte, sigHeader string) (*WebhookEvent, error)
}

// ProviderOrder is a remote order resource at the redirect provider
type ProviderOrder struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Raw    json.RawMessage `json:"-"`
}

// CaptureResult is the provider response to a capture call
type CaptureResult struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	ReferenceID string          `json:"reference_id"`
	Raw         json.RawMessage `json:"-"`
}

// RedirectGateway is the redirect provider (create/capture API) integration
type RedirectGateway interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal, referenceID string) (*ProviderOrder, error)
	CaptureOrder(ctx context.Context, providerOrderID string) (*CaptureResult, error)
}
