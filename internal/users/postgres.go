package users

import (
	"context"
	"database/sql"
)

// PostgresStore implements Store with raw parameterized SQL
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Insert(ctx context.Context, u *User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, avatar, role)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Avatar, u.Role)
	return err
}

func (s *PostgresStore) GetByID(ctx context.Context, id string) (*User, error) {
	return s.get(ctx, `
		SELECT id, name, email, password_hash, avatar, role, created_at
		FROM users WHERE id = $1`, id)
}

func (s *PostgresStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.get(ctx, `
		SELECT id, name, email, password_hash, avatar, role, created_at
		FROM users WHERE email = $1`, email)
}

func (s *PostgresStore) get(ctx context.Context, query string, arg any) (*User, error) {
	var (
		u      User
		avatar sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &avatar, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Avatar = avatar.String
	return &u, nil
}

func (s *PostgresStore) UpdateProfile(ctx context.Context, id, name, email string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET name = $1, email = $2 WHERE id = $3`, name, email, id)
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

func (s *PostgresStore) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
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

// ListOrders returns the user's purchase history, one row per order line
func (s *PostgresStore) ListOrders(ctx context.Context, userID string) ([]PurchaseRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, o.created_at, p.id, p.name, p.price, oi.qty
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN products p ON p.id = oi.product_id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PurchaseRow
	for rows.Next() {
		var r PurchaseRow
		if err := rows.Scan(&r.OrderID, &r.CreatedAt, &r.ProductID, &r.ProductName, &r.Price, &r.Quantity); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ListWishlist(ctx context.Context, userID string) ([]WishlistItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.price, p.image
		FROM wishlist w
		JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WishlistItem
	for rows.Next() {
		var (
			item  WishlistItem
			image sql.NullString
		)
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Price, &image); err != nil {
			return nil, err
		}
		item.Image = image.String
		out = append(out, item)
	}
	return out, rows.Err()
}
