package notifier

import (
	"context"
	"encoding/json"
	"log"

	"github.com/shopspring/decimal"

	"github.com/example/shop-api/internal/email"
	"github.com/example/shop-api/internal/event"
)

// ConfirmationSender is the slice of the email service the notifier uses
type ConfirmationSender interface {
	SendOrderConfirmation(to, orderID string, total decimal.Decimal, items []email.OrderItem) error
}

// Handler turns order events into outbound email
type Handler struct {
	sender ConfirmationSender
}

// NewHandler creates a new notification handler
func NewHandler(sender ConfirmationSender) *Handler {
	return &Handler{sender: sender}
}

// HandleEvent processes one event from the order stream. Malformed payloads
// are logged and dropped; there is no point redelivering them.
func (h *Handler) HandleEvent(_ context.Context, _, value []byte) error {
	var env event.Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		log.Printf("[Notifier] Failed to unmarshal envelope: %v", err)
		return nil
	}

	switch env.EventType {
	case event.TypeOrderCreated:
		return h.handleOrderCreated(env)
	case event.TypeOrderPaid:
		var e event.OrderPaidPayload
		if err := json.Unmarshal(env.Payload, &e); err == nil {
			log.Printf("[Notifier] Order %s paid via %s", e.OrderID, e.Provider)
		}
		return nil
	default:
		return nil
	}
}

func (h *Handler) handleOrderCreated(env event.Envelope) error {
	var e event.OrderCreatedPayload
	if err := json.Unmarshal(env.Payload, &e); err != nil {
		log.Printf("[Notifier] Failed to unmarshal order.created payload: %v", err)
		return nil
	}
	if e.UserEmail == "" {
		log.Printf("[Notifier] Order %s has no user email, skipping confirmation", e.OrderID)
		return nil
	}

	log.Printf("[Notifier] Sending confirmation for order %s to %s", e.OrderID, e.UserEmail)

	items := make([]email.OrderItem, len(e.Items))
	for i, item := range e.Items {
		items[i] = email.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Qty,
			Price:     item.Price,
		}
	}

	if err := h.sender.SendOrderConfirmation(e.UserEmail, e.OrderID, e.Total, items); err != nil {
		log.Printf("[Notifier] Failed to send confirmation for order %s: %v", e.OrderID, err)
		return err
	}
	return nil
}
