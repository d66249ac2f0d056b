package payments

import (
	"context"
	"database/sql"

	"github.com/example/shop-api/internal/orders"
)

// PostgresOrderStore implements OrderStore on the orders table
type PostgresOrderStore struct {
	db *sql.DB
}

func NewPostgresOrderStore(db *sql.DB) *PostgresOrderStore {
	return &PostgresOrderStore{db: db}
}

func (s *PostgresOrderStore) SetPaymentIntentID(ctx context.Context, orderID, intentID string) error {
	return s.setReference(ctx, `UPDATE orders SET payment_intent_id = $1, updated_at = now() WHERE id = $2`, intentID, orderID)
}

func (s *PostgresOrderStore) SetProviderOrderID(ctx context.Context, orderID, providerOrderID string) error {
	return s.setReference(ctx, `UPDATE orders SET paypal_order_id = $1, updated_at = now() WHERE id = $2`, providerOrderID, orderID)
}

func (s *PostgresOrderStore) setReference(ctx context.Context, query, ref, orderID string) error {
	res, err := s.db.ExecContext(ctx, query, ref, orderID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return orders.ErrNotFound
	}
	return nil
}

func (s *PostgresOrderStore) MarkPaidByIntentID(ctx context.Context, intentID string) (string, error) {
	var orderID string
	err := s.db.QueryRowContext(ctx, `
		UPDATE orders
		SET status = $1, payment_status = $2, updated_at = now()
		WHERE payment_intent_id = $3 AND payment_status <> $2
		RETURNING id`,
		orders.StatusPaid, orders.PaymentCompleted, intentID,
	).Scan(&orderID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return orderID, nil
}

func (s *PostgresOrderStore) MarkPaidByProviderOrder(ctx context.Context, providerOrderID, referenceID string) (string, error) {
	var orderID string
	err := s.db.QueryRowContext(ctx, `
		UPDATE orders
		SET status = $1, payment_status = $2, updated_at = now()
		WHERE (paypal_order_id = $3 OR id = $4) AND payment_status <> $2
		RETURNING id`,
		orders.StatusPaid, orders.PaymentCompleted, providerOrderID, referenceID,
	).Scan(&orderID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return orderID, nil
}
