package orders

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// PostgresStore implements Store with raw parameterized SQL
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create persists the order, its items and the stock decrements inside a
// single transaction. The decrement is conditional on remaining stock, so a
// sold-out product aborts the whole order.
func (s *PostgresStore) Create(ctx context.Context, in CreateOrderInput) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	addressJSON, err := json.Marshal(in.ShippingAddress)
	if err != nil {
		return "", err
	}

	orderID := uuid.NewString()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (
			id, user_id, shipping_address, payment_method,
			items_price, tax_price, shipping_price, total_price,
			status, payment_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		orderID, in.UserID, addressJSON, in.PaymentMethod,
		in.ItemsPrice, in.TaxPrice, in.ShippingPrice, in.TotalPrice,
		StatusPending, PaymentPending,
	)
	if err != nil {
		return "", err
	}

	for _, item := range in.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, name, qty, price, image)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.NewString(), orderID, item.ProductID, item.Name, item.Qty, item.Price, item.Image,
		)
		if err != nil {
			return "", err
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE products
			SET count_in_stock = count_in_stock - $1
			WHERE id = $2 AND count_in_stock >= $1`,
			item.Qty, item.ProductID,
		)
		if err != nil {
			return "", err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return "", err
		}
		if affected == 0 {
			return "", fmt.Errorf("%w: product %s", ErrInsufficientStock, item.ProductID)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return orderID, nil
}

const orderAggregateQuery = `
	SELECT o.id, o.user_id, o.shipping_address, o.payment_method,
	       o.items_price, o.tax_price, o.shipping_price, o.total_price,
	       o.status, o.payment_status, o.payment_intent_id, o.paypal_order_id,
	       o.created_at, o.updated_at,
	       COALESCE(
	           json_agg(json_build_object(
	               'product_id', oi.product_id,
	               'name', oi.name,
	               'qty', oi.qty,
	               'price', oi.price,
	               'image', oi.image
	           )) FILTER (WHERE oi.order_id IS NOT NULL),
	           '[]'
	       ) AS order_items
	FROM orders o
	LEFT JOIN order_items oi ON oi.order_id = o.id`

func (s *PostgresStore) GetByID(ctx context.Context, id string) (*Order, error) {
	row := s.db.QueryRowContext(ctx, orderAggregateQuery+` WHERE o.id = $1 GROUP BY o.id`, id)
	return scanOrderAggregate(row)
}

func (s *PostgresStore) GetByIDForUser(ctx context.Context, id, userID string) (*Order, error) {
	row := s.db.QueryRowContext(ctx,
		orderAggregateQuery+` WHERE o.id = $1 AND o.user_id = $2 GROUP BY o.id`, id, userID)
	return scanOrderAggregate(row)
}

func scanOrderAggregate(row *sql.Row) (*Order, error) {
	var (
		o           Order
		addressJSON []byte
		itemsJSON   []byte
		intentID    sql.NullString
		paypalID    sql.NullString
	)
	err := row.Scan(
		&o.ID, &o.UserID, &addressJSON, &o.PaymentMethod,
		&o.ItemsPrice, &o.TaxPrice, &o.ShippingPrice, &o.TotalPrice,
		&o.Status, &o.PaymentStatus, &intentID, &paypalID,
		&o.CreatedAt, &o.UpdatedAt,
		&itemsJSON,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(addressJSON, &o.ShippingAddress); err != nil {
		return nil, fmt.Errorf("decode shipping address: %w", err)
	}
	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	o.PaymentIntentID = intentID.String
	o.PayPalOrderID = paypalID.String
	return &o, nil
}

// List returns all orders with user display fields joined, newest first
func (s *PostgresStore) List(ctx context.Context) ([]Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, o.user_id, o.shipping_address, o.payment_method,
		       o.items_price, o.tax_price, o.shipping_price, o.total_price,
		       o.status, o.payment_status, o.payment_intent_id, o.paypal_order_id,
		       o.created_at, o.updated_at,
		       u.name, u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var (
			o           Order
			addressJSON []byte
			intentID    sql.NullString
			paypalID    sql.NullString
		)
		err := rows.Scan(
			&o.ID, &o.UserID, &addressJSON, &o.PaymentMethod,
			&o.ItemsPrice, &o.TaxPrice, &o.ShippingPrice, &o.TotalPrice,
			&o.Status, &o.PaymentStatus, &intentID, &paypalID,
			&o.CreatedAt, &o.UpdatedAt,
			&o.UserName, &o.UserEmail,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(addressJSON, &o.ShippingAddress); err != nil {
			return nil, fmt.Errorf("decode shipping address: %w", err)
		}
		o.PaymentIntentID = intentID.String
		o.PayPalOrderID = paypalID.String
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id string, status Status) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Report aggregates orders by calendar date and status. Filters are optional
// and AND-combined; predicates are built with numbered placeholders, never by
// concatenating values.
func (s *PostgresStore) Report(ctx context.Context, f ReportFilter) ([]ReportRow, error) {
	query := `
		SELECT created_at::date::text AS date,
		       status,
		       COUNT(*) AS total_orders,
		       COALESCE(SUM(total_price), 0) AS total_sales
		FROM orders
		WHERE 1=1`
	var args []any

	if f.StartDate != "" {
		args = append(args, f.StartDate)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if f.EndDate != "" {
		args = append(args, f.EndDate)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	query += ` GROUP BY created_at::date, status ORDER BY date DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ReportRow
	for rows.Next() {
		var r ReportRow
		if err := rows.Scan(&r.Date, &r.Status, &r.TotalOrders, &r.TotalSales); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
