package payments

import "context"

// OrderStore is the slice of order persistence the payment adapter needs.
// The MarkPaid operations are match-and-set: they return the matched order ID,
// or "" when nothing matched (unknown reference, or already reconciled), and
// never treat a zero-row update as an error. That makes webhook replays and
// duplicate captures safe without any locking.
type OrderStore interface {
	SetPaymentIntentID(ctx context.Context, orderID, intentID string) error
	SetProviderOrderID(ctx context.Context, orderID, providerOrderID string) error
	MarkPaidByIntentID(ctx context.Context, intentID string) (orderID string, err error)
	// MarkPaidByProviderOrder matches by provider order ID OR by the
	// correlation reference; either identifier is accepted as authoritative.
	MarkPaidByProviderOrder(ctx context.Context, providerOrderID, referenceID string) (orderID string, err error)
}
