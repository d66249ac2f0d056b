// Package event defines the order event stream published to Kafka and the
// producer/consumer wrappers around it. Events are advisory: the API treats
// publishing as best-effort and never fails a request on a broker error.
package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TypeOrderCreated = "order.created"
	TypeOrderPaid    = "order.paid"
)

// Envelope wraps every event on the stream
type Envelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Producer   string          `json:"producer"`
	Payload    json.RawMessage `json:"payload"`
}

// NewEnvelope builds an envelope around the given payload
func NewEnvelope(eventType, producer string, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Producer:   producer,
		Payload:    data,
	}, nil
}

// ItemPayload is one order line inside an OrderCreatedPayload
type ItemPayload struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Qty       int             `json:"qty"`
	Price     decimal.Decimal `json:"price"`
}

// OrderCreatedPayload carries everything the notifier needs to send the
// confirmation email without a database round trip.
type OrderCreatedPayload struct {
	OrderID   string          `json:"order_id"`
	UserID    string          `json:"user_id"`
	UserEmail string          `json:"user_email"`
	Items     []ItemPayload   `json:"items"`
	Total     decimal.Decimal `json:"total"`
}

// OrderPaidPayload is published when payment reconciliation marks an order paid
type OrderPaidPayload struct {
	OrderID  string `json:"order_id"`
	Provider string `json:"provider"`
}
