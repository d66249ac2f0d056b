package reviews

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

// HasCompletedPurchase reports whether the user has at least one order item
// for the product within a completed order.
func (s *PostgresStore) HasCompletedPurchase(ctx context.Context, userID, productID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM order_items oi
			JOIN orders o ON o.id = oi.order_id
			WHERE o.user_id = $1 AND oi.product_id = $2 AND o.status = 'completed'
		)`, userID, productID).Scan(&exists)
	return exists, err
}

func (s *PostgresStore) Exists(ctx context.Context, userID, productID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reviews WHERE user_id = $1 AND product_id = $2
		)`, userID, productID).Scan(&exists)
	return exists, err
}

func (s *PostgresStore) Insert(ctx context.Context, r *Review) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (id, user_id, product_id, rating, comment, status)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, r.UserID, r.ProductID, r.Rating, r.Comment, r.Status)
	return err
}

func (s *PostgresStore) GetByID(ctx context.Context, id string) (*Review, error) {
	var (
		r         Review
		adminID   sql.NullString
		reply     sql.NullString
		repliedAt sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, product_id, rating, comment, status,
		       admin_id, admin_reply, replied_at, created_at, updated_at
		FROM reviews WHERE id = $1`, id).Scan(
		&r.ID, &r.UserID, &r.ProductID, &r.Rating, &r.Comment, &r.Status,
		&adminID, &reply, &repliedAt, &r.CreatedAt, &r.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	r.AdminID = adminID.String
	r.AdminReply = reply.String
	if repliedAt.Valid {
		t := repliedAt.Time
		r.RepliedAt = &t
	}
	return &r, nil
}

func (s *PostgresStore) Update(ctx context.Context, id string, rating int, comment string, status Status) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE reviews
		SET rating = $1, comment = $2, status = $3, updated_at = now()
		WHERE id = $4`, rating, comment, status, id)
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
	res, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
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

// ListApprovedForProduct returns public reviews, newest first, with user and
// replying-admin display fields joined.
func (s *PostgresStore) ListApprovedForProduct(ctx context.Context, productID string) ([]Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.user_id, r.product_id, r.rating, r.comment, r.status,
		       r.admin_id, r.admin_reply, r.replied_at, r.created_at, r.updated_at,
		       u.name, u.avatar, a.name, a.avatar
		FROM reviews r
		LEFT JOIN users u ON u.id = r.user_id
		LEFT JOIN users a ON a.id = r.admin_id
		WHERE r.product_id = $1 AND r.status = 'approved'
		ORDER BY r.created_at DESC`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		var (
			r           Review
			adminID     sql.NullString
			reply       sql.NullString
			repliedAt   sql.NullTime
			userName    sql.NullString
			userAvatar  sql.NullString
			adminName   sql.NullString
			adminAvatar sql.NullString
		)
		err := rows.Scan(
			&r.ID, &r.UserID, &r.ProductID, &r.Rating, &r.Comment, &r.Status,
			&adminID, &reply, &repliedAt, &r.CreatedAt, &r.UpdatedAt,
			&userName, &userAvatar, &adminName, &adminAvatar)
		if err != nil {
			return nil, err
		}
		r.AdminID = adminID.String
		r.AdminReply = reply.String
		if repliedAt.Valid {
			t := repliedAt.Time
			r.RepliedAt = &t
		}
		r.UserName = userName.String
		r.UserAvatar = userAvatar.String
		r.AdminName = adminName.String
		r.AdminAvatar = adminAvatar.String
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListPending returns reviews awaiting moderation, newest first
func (s *PostgresStore) ListPending(ctx context.Context) ([]Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.user_id, r.product_id, r.rating, r.comment, r.status,
		       r.created_at, r.updated_at, u.name, p.name
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		JOIN products p ON p.id = r.product_id
		WHERE r.status = 'pending'
		ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		var r Review
		err := rows.Scan(
			&r.ID, &r.UserID, &r.ProductID, &r.Rating, &r.Comment, &r.Status,
			&r.CreatedAt, &r.UpdatedAt, &r.UserName, &r.ProductName)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Approve transitions pending -> approved, stamping the admin. Returns false
// when the review is missing or not pending.
func (s *PostgresStore) Approve(ctx context.Context, id, adminID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE reviews
		SET status = 'approved', admin_id = $1, updated_at = now()
		WHERE id = $2 AND status = 'pending'`, adminID, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Reply stamps the admin reply on an approved review. Returns false when the
// review is missing or not approved.
func (s *PostgresStore) Reply(ctx context.Context, id, adminID, reply string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE reviews
		SET admin_reply = $1, admin_id = $2, replied_at = now(), updated_at = now()
		WHERE id = $3 AND status = 'approved'`, reply, adminID, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
