package payments

import (
	"context"
	"fmt"
	"log"

	"github.com/example/shop-api/internal/event"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
)

// Publisher is the slice of the event producer the payment adapter needs
type Publisher interface {
	Publish(ctx context.Context, key string, env event.Envelope) error
}

// Service orchestrates the two provider integrations and the webhook
// reconciler.
type Service struct {
	store    OrderStore
	card     CardGateway
	redirect RedirectGateway
	events   Publisher
}

func NewService(store OrderStore, card CardGateway, redirect RedirectGateway, events Publisher) *Service {
	return &Service{store: store, card: card, redirect: redirect, events: events}
}

// CreateStripeIntent opens a payment intent for the order amount and persists
// the intent ID on the order for later webhook matching.
func (s *Service) CreateStripeIntent(ctx context.Context, orderID string, amount decimal.Decimal) (string, error) {
	if s.card == nil {
		return "", fmt.Errorf("stripe not configured: %w", ErrProvider)
	}
	intent, err := s.card.CreateIntent(ctx, amount, orderID)
	if err != nil {
		return "", err
	}

	if err := s.store.SetPaymentIntentID(ctx, orderID, intent.ID); err != nil {
		return "", fmt.Errorf("persist intent id on order %s: %w", orderID, err)
	}

	return intent.ClientSecret, nil
}

// HandleStripeWebhook verifies the signature over the raw payload before
// touching any state, then applies payment_intent.succeeded as a match-and-set
// update. Replays and unknown intent IDs ack without changing anything.
func (s *Service) HandleStripeWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	if s.card == nil {
		return fmt.Errorf("stripe not configured: %w", ErrProvider)
	}
	ev, err := s.card.ParseWebhook(payload, sigHeader)
	if err != nil {
		return err
	}

	if ev.Type != string(stripe.EventTypePaymentIntentSucceeded) {
		return nil
	}

	orderID, err := s.store.MarkPaidByIntentID(ctx, ev.IntentID)
	if err != nil {
		return fmt.Errorf("reconcile intent %s: %w", ev.IntentID, err)
	}
	if orderID != "" {
		s.publishPaid(ctx, orderID, "stripe")
	}
	return nil
}

// CreatePayPalOrder creates the remote order resource and persists its ID
func (s *Service) CreatePayPalOrder(ctx context.Context, orderID string, amount decimal.Decimal) (*ProviderOrder, error) {
	if s.redirect == nil {
		return nil, fmt.Errorf("paypal not configured: %w", ErrProvider)
	}
	po, err := s.redirect.CreateOrder(ctx, amount, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.store.SetProviderOrderID(ctx, orderID, po.ID); err != nil {
		return nil, fmt.Errorf("persist provider order id on order %s: %w", orderID, err)
	}

	return po, nil
}

// CapturePayPalOrder captures the remote order and reconciles the local order
// matched by provider ID or correlation reference.
func (s *Service) CapturePayPalOrder(ctx context.Context, providerOrderID string) (*CaptureResult, error) {
	if s.redirect == nil {
		return nil, fmt.Errorf("paypal not configured: %w", ErrProvider)
	}
	res, err := s.redirect.CaptureOrder(ctx, providerOrderID)
	if err != nil {
		return nil, err
	}

	orderID, err := s.store.MarkPaidByProviderOrder(ctx, res.ID, res.ReferenceID)
	if err != nil {
		return nil, fmt.Errorf("reconcile provider order %s: %w", res.ID, err)
	}
	if orderID != "" {
		s.publishPaid(ctx, orderID, "paypal")
	}

	return res, nil
}

func (s *Service) publishPaid(ctx context.Context, orderID, provider string) {
	if s.events == nil {
		return
	}
	env, err := event.NewEnvelope(event.TypeOrderPaid, "shop-api", event.OrderPaidPayload{
		OrderID:  orderID,
		Provider: provider,
	})
	if err != nil {
		log.Printf("[Payments] Failed to build order.paid event: %v", err)
		return
	}
	if err := s.events.Publish(ctx, orderID, env); err != nil {
		log.Printf("[Payments] Failed to publish order.paid for %s: %v", orderID, err)
	}
}
